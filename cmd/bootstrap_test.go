package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"traffic-classifier/core/config"
	"traffic-classifier/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stumpJSON = `{"name":"stump","version":"1","features":["a"],"classes":[0,1],
"trees":[{"nodes":[{"feature":0,"threshold":1,"left":1,"right":2},
{"left":-1,"right":-1,"value":[0,1]},{"left":-1,"right":-1,"value":[1,0]}]}]}`

func TestConnectStorage_Disabled(t *testing.T) {
	client, err := connectStorage(context.Background(), &config.Config{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestLoadPredictor(t *testing.T) {
	ctx := context.Background()

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "model.json")
		require.NoError(t, os.WriteFile(path, []byte(stumpJSON), 0o600))

		cfg := &config.Config{Model: model.Config{Source: model.SourceFile, Path: path}}
		predictor, err := loadPredictor(ctx, cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, predictor.Features())
	})

	t.Run("Missing", func(t *testing.T) {
		cfg := &config.Config{Model: model.Config{Source: model.SourceFile, Path: filepath.Join(t.TempDir(), "none.json")}}
		predictor, err := loadPredictor(ctx, cfg, nil)
		assert.Error(t, err)
		assert.Nil(t, predictor)
	})

	t.Run("InvalidSource", func(t *testing.T) {
		cfg := &config.Config{Model: model.Config{Source: "ftp"}}
		_, err := loadPredictor(ctx, cfg, nil)
		assert.ErrorContains(t, err, "invalid model source")
	})
}

func TestPredictCmd(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	input := filepath.Join(dir, "flows.csv")
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(modelPath, []byte(stumpJSON), 0o600))
	require.NoError(t, os.WriteFile(input, []byte("a,name\n0,x\n5,y\nNaN,z\n"), 0o600))
	t.Setenv("MODEL_PATH", modelPath)

	RootCmd.SetArgs([]string{"predict", input, "-o", output})
	t.Cleanup(func() { RootCmd.SetArgs(nil) })
	require.NoError(t, RootCmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "a,name,Predicted_Label\n0,x,Bot\n5,y,Benign\n", string(data))
}
