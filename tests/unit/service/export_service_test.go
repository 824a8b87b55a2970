package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docreview/internal/domain"
	"docreview/internal/extraction"
	"docreview/internal/review"
	"docreview/internal/service"
	"docreview/mocks"
)

// loadedSession builds a session whose committed tree comes from the given
// extraction result payload.
func loadedSession(t *testing.T, result string) *review.Session {
	t.Helper()

	jobs := new(mocks.MockJobStore)
	jobs.On("FetchResult", mock.Anything, "J1").Return(&domain.Job{
		ID:       "J1",
		Status:   domain.JobStatusComplete,
		Filename: "agreement.pdf",
		Result:   []byte(result),
	}, nil)

	sess := review.NewSession(new(mocks.MockExtractor), jobs)
	require.NoError(t, sess.Attach("J1"))
	require.NoError(t, sess.Fetch(context.Background()))
	return sess
}

const exportResult = `{
	"dates": {
		"agreement_date": {"value": "2024-03-15", "page_number": 2},
		"effective_date": {"value": null, "page_number": null}
	},
	"parties": [
		{"name": {"value": "Acme Corp", "page_number": 1}},
		{"name": {"value": "Globex LLC", "page_number": 1}}
	],
	"governing_law": {"value": "New York", "page_number": 14}
}`

func TestExportService_CSV(t *testing.T) {
	sess := loadedSession(t, exportResult)
	svc := service.NewExportService()

	data, err := svc.ExportCSV(sess)
	require.NoError(t, err)

	// Strip the BOM before parsing.
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	r := csv.NewReader(bytes.NewReader(data[3:]))
	rows, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Section", "Entry", "Field", "Value", "Source Page"}, rows[0])
	assert.Equal(t, []string{"dates", "", "agreement_date", "2024-03-15", "2"}, rows[1])
	assert.Equal(t, []string{"dates", "", "effective_date", "", ""}, rows[2])
	assert.Equal(t, []string{"parties", "1", "name", "Acme Corp", "1"}, rows[3])
	assert.Equal(t, []string{"parties", "2", "name", "Globex LLC", "1"}, rows[4])
	assert.Equal(t, []string{"governing_law", "", "", "New York", "14"}, rows[5])
}

func TestExportService_CSV_ReflectsSavedEditsOnly(t *testing.T) {
	sess := loadedSession(t, exportResult)
	svc := service.NewExportService()

	require.NoError(t, sess.BeginEdit())
	require.NoError(t, sess.SetField("governing_law", extraction.Path{}, extraction.Str("Delaware")))

	// Mid-edit: the export still shows the committed value.
	data, err := svc.ExportCSV(sess)
	require.NoError(t, err)
	assert.Contains(t, string(data), "New York")
	assert.NotContains(t, string(data), "Delaware")

	require.NoError(t, sess.Save())
	data, err = svc.ExportCSV(sess)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Delaware")
}

func TestExportService_XLSX(t *testing.T) {
	sess := loadedSession(t, exportResult)
	svc := service.NewExportService()

	data, err := svc.ExportXLSX(sess)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Extraction")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Section", rows[0][0])
	assert.Equal(t, "dates", rows[1][0])
	assert.Equal(t, "2024-03-15", rows[1][3])
	assert.Equal(t, "Globex LLC", rows[4][3])
}

func TestExportService_NoResult(t *testing.T) {
	sess := review.NewSession(new(mocks.MockExtractor), new(mocks.MockJobStore))
	svc := service.NewExportService()

	_, err := svc.ExportCSV(sess)
	assert.ErrorIs(t, err, domain.ErrNoResult)

	_, err = svc.ExportXLSX(sess)
	assert.ErrorIs(t, err, domain.ErrNoResult)
}
