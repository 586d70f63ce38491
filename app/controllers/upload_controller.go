package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/upahaar/upahaar/app/services"
	"github.com/upahaar/upahaar/pkg/ctx"
	"github.com/upahaar/upahaar/pkg/logger"
	"github.com/upahaar/upahaar/pkg/storage"
	"github.com/upahaar/upahaar/pkg/workerpool"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxCSVBytes     = 5 << 20  // one CSV upload
	maxUploadBytes  = 32 << 20 // per image multipart form
	uploadPoolSize  = 4
	csvFormField    = "file"
	imagesFormField = "images"
)

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// UploadController serves the admin-only CSV import and product image upload
// endpoints.
type UploadController struct {
	ingest *services.IngestService
	pool   *workerpool.Pool
}

func NewUploadController() *UploadController {
	return &UploadController{
		ingest: services.NewIngestService(),
		pool:   workerpool.New(uploadPoolSize),
	}
}

// ImportCSV handles POST /products/import. The CSV stream goes straight
// from the multipart part into the ingest pipeline.
func (uc *UploadController) ImportCSV(c *ctx.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, maxCSVBytes)

	file, header, err := c.R.FormFile(csvFormField)
	if err != nil {
		c.Error(http.StatusBadRequest, "CSV file is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		c.Error(http.StatusBadRequest, "Only CSV files are accepted")
		return
	}

	result, err := uc.ingest.ImportCSV(c.Context(), file, actor)
	if err != nil {
		logger.WithCtx(c.Context()).Error("csv import", "error", err, "file", header.Filename)
		c.Error(http.StatusInternalServerError, "Error saving data")
		return
	}

	c.Success("CSV data uploaded and saved successfully", result)
}

type uploadedImage struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	Err  string `json:"error,omitempty"`
}

// UploadImages handles POST /products/upload-images. Files are stored
// concurrently on the configured disk and each result is reported
// individually.
func (uc *UploadController) UploadImages(c *ctx.Context) {
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, maxUploadBytes)

	if err := c.R.ParseMultipartForm(maxUploadBytes); err != nil {
		c.Error(http.StatusBadRequest, "Invalid multipart form")
		return
	}
	files := c.R.MultipartForm.File[imagesFormField]
	if len(files) == 0 {
		c.Error(http.StatusBadRequest, "At least one image is required")
		return
	}

	results := make([]uploadedImage, len(files))
	var wg sync.WaitGroup
	for i, fh := range files {
		i, fh := i, fh
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = storeImage(fh)
		}
		if err := uc.pool.Submit(task); err != nil {
			// Pool saturated, store inline instead of failing the request.
			task()
		}
	}
	wg.Wait()

	c.Success("Images processed", map[string]interface{}{"images": results})
}

// storeImage writes one multipart file to the default disk and returns its
// public URL, or the per-file failure.
func storeImage(fh *multipart.FileHeader) uploadedImage {
	out := uploadedImage{Name: fh.Filename}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		out.Err = "unsupported file type"
		return out
	}

	src, err := fh.Open()
	if err != nil {
		out.Err = err.Error()
		return out
	}
	defer src.Close()

	path := objectPath(fh.Filename)
	if err := storage.PutStream(path, src); err != nil {
		logger.Error("store image", "error", err, "file", fh.Filename)
		out.Err = "storage failure"
		return out
	}

	out.URL = storage.URL(path)
	return out
}

// objectPath builds a collision-free storage path for an uploaded image.
func objectPath(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("products/%s/%s%s",
		time.Now().Format("2006/01"), primitive.NewObjectID().Hex(), ext)
}
