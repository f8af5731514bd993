package yahoo

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dnaeon/go-vcr/recorder"
	"github.com/stretchr/testify/assert"
)

// This test uses go-vcr to record/replay a real GetDailyHistory call.
// It skips by default if the cassette is absent and RECORD_CASSETTES != 1.
func TestClient_GetDailyHistory_Recorded(t *testing.T) {
	cassette := filepath.Join("testdata", "cassettes", "yahoo_chart_aapl.yaml")
	if _, err := os.Stat(cassette); os.IsNotExist(err) {
		if os.Getenv("RECORD_CASSETTES") != "1" {
			t.Skipf("cassette missing; set RECORD_CASSETTES=1 to record: %s", cassette)
		}
		err := os.MkdirAll(filepath.Dir(cassette), 0o755)
		assert.NoError(t, err, "mkdir cassettes dir should succeed")
	}

	r, err := recorder.New(cassette)
	assert.NoError(t, err, "recorder.New should not error")
	assert.NotNil(t, r, "recorder should not be nil")
	defer func() { _ = r.Stop() }()

	httpClient := &http.Client{Transport: r}
	client := NewClient(WithHTTPClient(httpClient))
	ctx := context.Background()

	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -1, 0)
	bars, err := client.GetDailyHistory(ctx, "AAPL", start, end)
	assert.NoError(t, err, "GetDailyHistory should not error")
	assert.NotEmpty(t, bars, "bars should not be empty")
	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i-1].Date.Before(bars[i].Date), "bars should ascend by date")
	}
}
