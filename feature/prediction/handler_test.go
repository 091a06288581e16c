package prediction

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"traffic-classifier/core/model/mocks"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const trafficCSV = " Flow Duration, Total Fwd Packets,Label,Src IP\n" +
	" 500,3,BENIGN,10.0.0.1\n" +
	"NaN,1,BENIGN,10.0.0.2\n" +
	"5000,10,BOT,10.0.0.3\n" +
	"inf,2,BOT,10.0.0.4\n" +
	"700,,BOT,10.0.0.5\n"

func errorBody(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	msg, _ := payload["error"].(string)
	return msg
}

func TestHandleHome(t *testing.T) {
	app, _, _ := setupTestApp(t, nil, Options{})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Cyber Threat Prediction Backend is Running!", string(body))
}

func TestHandlePredict(t *testing.T) {
	app, _, m := setupTestApp(t, newStump(t), Options{})

	resp, err := app.Test(newUpload(t, "file", "flows.csv", trafficCSV))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Equal(t, `attachment; filename="classified_packets.csv"`, resp.Header.Get("Content-Disposition"))
	assert.NotEmpty(t, resp.Header.Get(RunIDHeader))

	records := readCSV(t, resp.Body)
	assert.Equal(t, [][]string{
		{" Flow Duration", " Total Fwd Packets", "Label", "Src IP", "Predicted_Label"},
		{" 500", "3", "BENIGN", "10.0.0.1", "Bot"},
		{"5000", "10", "BOT", "10.0.0.3", "Benign"},
	}, records)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("200")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Rows.WithLabelValues("received")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Rows.WithLabelValues("dropped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Predictions.WithLabelValues("Bot")))
}

func TestHandlePredict_ModelUnavailable(t *testing.T) {
	app, _, m := setupTestApp(t, nil, Options{})

	resp, err := app.Test(newUpload(t, "file", "flows.csv", trafficCSV))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
	assert.Equal(t, "Prediction model is not loaded.", errorBody(t, resp.Body))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("503")))
}

func TestHandlePredict_NoFile(t *testing.T) {
	app, _, _ := setupTestApp(t, newStump(t), Options{})

	t.Run("WrongField", func(t *testing.T) {
		resp, err := app.Test(newUpload(t, "upload", "flows.csv", trafficCSV))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, "No file part or selected file in the request.", errorBody(t, resp.Body))
	})

	t.Run("EmptyFilename", func(t *testing.T) {
		resp, err := app.Test(newUpload(t, "file", "", trafficCSV))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, "No file part or selected file in the request.", errorBody(t, resp.Body))
	})

	t.Run("NotMultipart", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/api/predict", strings.NewReader("a,b\n1,2\n")))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestHandlePredict_MissingColumn(t *testing.T) {
	app, _, _ := setupTestApp(t, newStump(t), Options{})

	upload := "Flow Duration,Protocol\n500,6\n"
	resp, err := app.Test(newUpload(t, "file", "flows.csv", upload))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t,
		"Missing expected column in CSV: 'Total Fwd Packets'. Check your input data format.",
		errorBody(t, resp.Body))
}

func TestHandlePredict_Failures(t *testing.T) {
	tests := []struct {
		name    string
		upload  string
		wantMsg string
	}{
		{"Empty", "", "An error occurred during prediction: no columns to parse from file"},
		{"TooManyFields", "Flow Duration,Total Fwd Packets\n1,2\n3,4,5\n", "expected 2 fields in line 3, saw 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := setupTestApp(t, newStump(t), Options{})

			resp, err := app.Test(newUpload(t, "file", "flows.csv", tt.upload))
			require.NoError(t, err)
			assert.Equal(t, 500, resp.StatusCode)
			assert.Contains(t, errorBody(t, resp.Body), tt.wantMsg)
		})
	}

	t.Run("PredictorFails", func(t *testing.T) {
		predictor := new(mocks.Predictor)
		predictor.On("Features").Return([]string{"Flow Duration", "Total Fwd Packets"})
		predictor.On("Predict", mock.Anything, mock.Anything).Return(nil, assert.AnError)
		app, _, _ := setupTestApp(t, predictor, Options{})

		resp, err := app.Test(newUpload(t, "file", "flows.csv", trafficCSV))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, "An error occurred during prediction: "+assert.AnError.Error(), errorBody(t, resp.Body))
	})
}

func TestHandlePredict_NoRowsLeft(t *testing.T) {
	app, _, _ := setupTestApp(t, newStump(t), Options{})

	upload := "Flow Duration,Total Fwd Packets\nNaN,1\n2,inf\n"
	resp, err := app.Test(newUpload(t, "file", "flows.csv", upload))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	assert.Equal(t, [][]string{{"Flow Duration", "Total Fwd Packets", "Predicted_Label"}}, readCSV(t, resp.Body))
}

func TestHandleModel(t *testing.T) {
	t.Run("Loaded", func(t *testing.T) {
		app, _, _ := setupTestApp(t, newStump(t), Options{})

		resp, err := app.Test(httptest.NewRequest("GET", "/api/model", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body struct {
			Available bool `json:"available"`
			Model     struct {
				Name     string   `json:"name"`
				Features []string `json:"features"`
				Trees    int      `json:"trees"`
			} `json:"model"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Available)
		assert.Equal(t, "stump", body.Model.Name)
		assert.Equal(t, []string{"Flow Duration", "Total Fwd Packets"}, body.Model.Features)
		assert.Equal(t, 1, body.Model.Trees)
	})

	t.Run("Unavailable", func(t *testing.T) {
		app, _, _ := setupTestApp(t, nil, Options{})

		resp, err := app.Test(httptest.NewRequest("GET", "/api/model", nil))
		require.NoError(t, err)
		assert.Equal(t, 503, resp.StatusCode)
		assert.Equal(t, "Prediction model is not loaded.", errorBody(t, resp.Body))
	})
}
