package services

import (
	"context"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReport(t *testing.T) {
	ctx := context.Background()
	svc := NewReportService(memstore.New().ReportedProducts)

	_, err := svc.CreateReport(ctx, &models.ReportedProduct{ProductID: "  "})
	assert.ErrorIs(t, err, ErrInvalidReport)

	res, err := svc.CreateReport(ctx, &models.ReportedProduct{
		ProductID: "p1",
		Reason:    "  " + strings.Repeat("é", 600) + "  ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.InsertedID)

	reports, err := svc.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 500, len([]rune(reports[0].Reason)))

	del, err := svc.DeleteReport(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)
}
