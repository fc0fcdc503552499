package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/service"
)

func pngBase64(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for x := range 8 {
		for y := range 6 {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 40), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestUploadPhoto_Self(t *testing.T) {
	ts := setupTestServer(t)
	ts.seed(t, domain.Employee{CPF: userCPF, Name: "COLABORADOR", Area: "PRODUCAO", Status: "ATIVO"})

	resp := ts.api.Post("/api/upload-foto", ts.userAuth(t), map[string]any{
		"cpf":          "333.444.555-66",
		"imagemBase64": "data:image/png;base64," + pngBase64(t),
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[service.PhotoResult](t, resp)
	assert.Equal(t, "image/png", env.Data.MIME)
	assert.Equal(t, 8, env.Data.Width)
	assert.NotEmpty(t, env.Data.BlurHash)

	stored, err := ts.st.GetEmployee(context.Background(), userCPF)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Photo, "data:image/png;base64,"))
	assert.Equal(t, env.Data.BlurHash, stored.PhotoHash)
}

func TestUploadPhoto_OtherEmployee(t *testing.T) {
	ts := setupTestServer(t)
	ts.seed(t, domain.Employee{CPF: "00000000009", Name: "OUTRO", Status: "ATIVO"})
	body := map[string]any{"cpf": "00000000009", "imagemBase64": pngBase64(t)}

	resp := ts.api.Post("/api/upload-foto", ts.userAuth(t), body)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Post("/api/upload-foto", ts.adminAuth(t), body)
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func TestUploadPhoto_Rejects(t *testing.T) {
	ts := setupTestServer(t)
	ts.seed(t, domain.Employee{CPF: userCPF, Name: "COLABORADOR", Status: "ATIVO"})

	tests := []struct {
		name   string
		image  string
		status int
	}{
		{"not base64", "%%%not-base64%%%", http.StatusBadRequest},
		{"not an image", base64.StdEncoding.EncodeToString([]byte("plain text, not a picture")), http.StatusBadRequest},
		{"empty", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/upload-foto", ts.userAuth(t), map[string]any{
				"cpf":          userCPF,
				"imagemBase64": tt.image,
			})
			assert.Equal(t, tt.status, resp.Code, resp.Body.String())
			assert.Equal(t, "VALIDATION", decode[any](t, resp).Code)
		})
	}
}

func TestUploadPhoto_UnknownEmployee(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/upload-foto", ts.adminAuth(t), map[string]any{
		"cpf":          "55566677788",
		"imagemBase64": pngBase64(t),
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", decode[any](t, resp).Code)
}
