package controllers

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRange(t *testing.T) {
	anchor := time.Date(2025, 1, 10, 14, 0, 0, 0, time.Local)

	t.Run("daily", func(t *testing.T) {
		start, end := reportRange("daily", anchor)
		assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local), start)
		assert.Equal(t, time.Date(2025, 1, 11, 0, 0, 0, 0, time.Local), end)
	})

	t.Run("weekly covers the 7 days ending on the anchor", func(t *testing.T) {
		start, end := reportRange("weekly", anchor)
		assert.Equal(t, time.Date(2025, 1, 4, 0, 0, 0, 0, time.Local), start)
		assert.Equal(t, time.Date(2025, 1, 11, 0, 0, 0, 0, time.Local), end)
	})

	t.Run("monthly covers the calendar month", func(t *testing.T) {
		start, end := reportRange("monthly", anchor)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), start)
		assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local), end)
	})

	t.Run("unknown type falls back to daily", func(t *testing.T) {
		start, end := reportRange("yearly", anchor)
		assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local), start)
		assert.Equal(t, time.Date(2025, 1, 11, 0, 0, 0, 0, time.Local), end)
	})
}

func sampleRows() []ReportRow {
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	return []ReportRow{
		{ReceiptNumber: "SVA-20250110-AAAAAA", ServiceName: "Thirumanjanam", DevoteeName: "Raman", DevoteePhone: "+919876543210", Amount: 501, ServiceDate: day, PaymentMode: "UPI", TransactionID: "TXN123"},
		{ReceiptNumber: "SVA-20250110-BBBBBB", ServiceName: "Abhisekam", DevoteeName: "Meena", DevoteePhone: "+919876500000", Amount: 1001, ServiceDate: day, PaymentMode: "CASH", TransactionID: "TXN124"},
		{ReceiptNumber: "SVA-20250110-CCCCCC", ServiceName: "Thirumanjanam", DevoteeName: "Kumar", DevoteePhone: "+919876511111", Amount: 501, ServiceDate: day, PaymentMode: "UPI", TransactionID: "TXN125"},
	}
}

func TestSummarize(t *testing.T) {
	summary := summarize(sampleRows())

	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 2003, summary.TotalAmount)

	require.Len(t, summary.BreakdownByService, 2)
	assert.Equal(t, ServiceBreakdown{Name: "Thirumanjanam", Count: 2, Amount: 1002}, summary.BreakdownByService[0])
	assert.Equal(t, ServiceBreakdown{Name: "Abhisekam", Count: 1, Amount: 1001}, summary.BreakdownByService[1])
}

func TestSummarizeEmpty(t *testing.T) {
	summary := summarize(nil)

	assert.Equal(t, 0, summary.TotalCount)
	assert.Equal(t, 0, summary.TotalAmount)
	assert.Empty(t, summary.BreakdownByService)
}

func TestRenderReportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderReportCSV(csv.NewWriter(&buf), sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// header + 3 rows + total line
	require.Len(t, records, 5)
	assert.Equal(t, "Receipt", records[0][0])
	assert.Equal(t, "Thirumanjanam", records[1][1])
	assert.Equal(t, "501", records[1][5])
	assert.Equal(t, "Total", records[4][0])
	assert.Equal(t, "2003", records[4][5])
}
