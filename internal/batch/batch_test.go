package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/ngodocs/internal/document"
	"github.com/cleared-dev/ngodocs/internal/id"
	"github.com/cleared-dev/ngodocs/internal/locale"
	"github.com/cleared-dev/ngodocs/internal/manifest"
	"github.com/cleared-dev/ngodocs/internal/numwords"
)

const receiptsCSV = `Donor_Name,Amount,Purpose,Date
Anita Rao,1500,Flood Relief,2026-10-01

Ravi Kumar,,,
Sita Devi,-20,,
"Mohan Lal",250000,,2026-10-05
`

func TestCSVReader(t *testing.T) {
	rows, err := (&CSVReader{}).Read(strings.NewReader(receiptsCSV))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, map[string]string{
		"donor_name": "Anita Rao",
		"amount":     "1500",
		"purpose":    "Flood Relief",
		"date":       "2026-10-01",
	}, rows[0].Fields)

	assert.Equal(t, 4, rows[1].Line, "blank line 3 is skipped")
	assert.Equal(t, map[string]string{"donor_name": "Ravi Kumar"}, rows[1].Fields)
	assert.Equal(t, "Mohan Lal", rows[3].Fields["donor_name"])
}

func TestCSVReader_Errors(t *testing.T) {
	_, err := (&CSVReader{}).Read(strings.NewReader("a,,c\n1,2,3\n"))
	assert.Error(t, err)

	_, err = (&CSVReader{}).Read(strings.NewReader("a,b\n1,2,3\n"))
	assert.Error(t, err)

	rows, err := (&CSVReader{}).Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestXLSXReader(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"name", "org_name", "blood_group"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Anita Rao", "Seva Trust", "O+"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Ravi Kumar", "Seva Trust"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := (&XLSXReader{}).Read(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{"name": "Anita Rao", "org_name": "Seva Trust", "blood_group": "O+"}, rows[0].Fields)
	assert.Equal(t, 3, rows[1].Line)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	rd, err := r.ForPath("donors.CSV")
	require.NoError(t, err)
	assert.Equal(t, "csv", rd.Format())

	rd, err = r.ForPath("/tmp/volunteers.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", rd.Format())

	_, err = r.ForPath("notes.txt")
	assert.Error(t, err)

	assert.Panics(t, func() { r.Register(&CSVReader{}) })
}

func newRunner() *Runner {
	return &Runner{
		Composer: document.NewComposer(locale.NewIndia(), document.DefaultDefaults()),
		Gen:      id.NewGenerator(id.NewSeededSource(1, 2)),
		Workers:  2,
		Prefill:  map[string]string{"org_name": "Seva Trust"},
		Now:      func() time.Time { return time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC) },
	}
}

func TestRunner_Run(t *testing.T) {
	rows, err := (&CSVReader{}).Read(strings.NewReader(receiptsCSV))
	require.NoError(t, err)

	results, err := newRunner().Run(context.Background(), document.KindReceipt, rows)
	require.NoError(t, err)
	require.Len(t, results, 4)

	require.NoError(t, results[0].Err)
	require.True(t, results[0].Preview.Ready())
	assert.Contains(t, results[0].Preview.Document.Text, "SEVA TRUST")
	assert.Contains(t, results[0].Preview.Document.Text, "Purpose: Flood Relief")

	require.NoError(t, results[1].Err)
	assert.False(t, results[1].Preview.Ready())
	assert.Equal(t, []string{"amount"}, results[1].Preview.NotReady.Missing)

	assert.ErrorIs(t, results[2].Err, numwords.ErrInvalidAmount)
	assert.Contains(t, results[2].Err.Error(), "line 5")

	require.True(t, results[3].Preview.Ready())
	assert.Contains(t, results[3].Preview.Document.Text, "₹2,50,000")
}

func TestRunner_RowOverridesPrefill(t *testing.T) {
	rows := []Row{{Line: 2, Fields: map[string]string{"org_name": "Asha Foundation", "subject": "Audit"}}}
	r := newRunner()
	results, err := r.Run(context.Background(), document.KindResolution, rows)
	require.NoError(t, err)
	require.True(t, results[0].Preview.Ready())
	assert.Contains(t, results[0].Preview.Document.Text, "ASHA FOUNDATION")
	assert.Equal(t, map[string]string{"org_name": "Seva Trust"}, r.Prefill, "prefill is not modified")
}

func TestRunner_UnknownField(t *testing.T) {
	rows := []Row{{Line: 2, Fields: map[string]string{"donor": "x"}}}
	results, err := newRunner().Run(context.Background(), document.KindReceipt, rows)
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, document.ErrUnknownField)
}

func TestRunner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := []Row{{Line: 2, Fields: map[string]string{"name": "A"}}}
	_, err := newRunner().Run(ctx, document.KindVolunteer, rows)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteAll(t *testing.T) {
	rows, err := (&CSVReader{}).Read(strings.NewReader(receiptsCSV))
	require.NoError(t, err)
	results, err := newRunner().Run(context.Background(), document.KindReceipt, rows)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	sum, err := WriteAll(dir, results, at)
	require.NoError(t, err)
	assert.Equal(t, Summary{Written: 2, NotReady: 1, Failed: 1}, sum)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if e.Name() != manifest.FileName {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	require.Len(t, names, 2)
	assert.True(t, strings.HasPrefix(names[0], "002-DR-2026-"))
	assert.True(t, strings.HasPrefix(names[1], "006-DR-2026-"))

	data, err := os.ReadFile(filepath.Join(dir, names[0]))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Anita Rao")

	logged, err := manifest.Read(dir)
	require.NoError(t, err)
	require.Len(t, logged, 4)
	byLine := make(map[int]manifest.Entry)
	for _, e := range logged {
		assert.Equal(t, "receipt", e.Kind)
		assert.Equal(t, at, e.Timestamp)
		byLine[e.Line] = e
	}
	assert.Equal(t, manifest.StatusWritten, byLine[2].Status)
	assert.Equal(t, names[0], byLine[2].File)
	assert.Equal(t, manifest.StatusNotReady, byLine[4].Status)
	assert.Contains(t, byLine[4].Detail, "amount")
	assert.Equal(t, manifest.StatusFailed, byLine[5].Status)
	assert.Contains(t, byLine[5].Detail, "invalid amount")
	assert.Empty(t, byLine[5].File)
}

func TestWriteAll_ReplacesEarlierRun(t *testing.T) {
	rows, err := (&CSVReader{}).Read(strings.NewReader(receiptsCSV))
	require.NoError(t, err)
	dir := t.TempDir()

	first, err := newRunner().Run(context.Background(), document.KindReceipt, rows)
	require.NoError(t, err)
	_, err = WriteAll(dir, first, time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	unrelated := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(unrelated, []byte("keep"), 0o644))

	r := newRunner()
	r.Gen = id.NewGenerator(id.NewSeededSource(7, 8))
	second, err := r.Run(context.Background(), document.KindReceipt, rows)
	require.NoError(t, err)
	_, err = WriteAll(dir, second, time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var want []string
	for _, res := range second {
		if res.Preview.Ready() {
			ref := res.Preview.Document.Reference
			want = append(want, fmt.Sprintf("%03d-%s.txt", res.Row.Line, ref))
		}
	}
	want = append(want, "notes.txt", manifest.FileName)
	sort.Strings(want)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	assert.Equal(t, want, got)

	logged, err := manifest.Read(dir)
	require.NoError(t, err)
	assert.Len(t, logged, 8, "the manifest keeps both runs")
}
