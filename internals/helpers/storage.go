// file: internals/helpers/storage.go
package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

/* =========================================================
   Penyimpanan file upload lokal (uploads dir dari config).
   Penulis dan pembaca tidak saling koordinasi selain lewat
   keunikan nama file: timestamp + suffix acak.
========================================================= */

var filenameSanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	clean := filenameSanitizeRe.ReplaceAllString(filename, "_")
	if len(clean) > 80 {
		clean = clean[len(clean)-80:]
	}
	return clean
}

// GenerateUniqueFilename: <unix-nano>-<8 hex uuid>-<nama-asli-sanitized>
func GenerateUniqueFilename(original string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixNano(), suffix, sanitizeFilename(original))
}

// SniffMime membaca 512 byte pertama untuk deteksi content type.
func SniffMime(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}
	mime := http.DetectContentType(head[:n])
	// DetectContentType menambahkan parameter charset untuk teks
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	return mime, nil
}

// SaveUpload menyimpan file apa adanya ke <dir>/<sub>/ dan
// mengembalikan path relatif + ukuran tersimpan.
func SaveUpload(dir, sub string, fh *multipart.FileHeader) (string, int64, error) {
	src, err := fh.Open()
	if err != nil {
		return "", 0, fmt.Errorf("gagal membuka file upload: %w", err)
	}
	defer src.Close()

	targetDir := filepath.Join(dir, sub)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("gagal membuat folder upload: %w", err)
	}

	relPath := filepath.Join(sub, GenerateUniqueFilename(fh.Filename))
	dst, err := os.Create(filepath.Join(dir, relPath))
	if err != nil {
		return "", 0, fmt.Errorf("gagal membuat file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		return "", 0, fmt.Errorf("gagal menulis file: %w", err)
	}
	return relPath, written, nil
}

// SaveImageAsWebp decode gambar upload, resize sisi terpanjang ke
// maxDim (tanpa upscale), lalu simpan sebagai webp.
func SaveImageAsWebp(dir, sub string, fh *multipart.FileHeader, maxDim int) (string, int64, error) {
	src, err := fh.Open()
	if err != nil {
		return "", 0, fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", 0, fmt.Errorf("gagal decode gambar: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > maxDim || b.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return "", 0, fmt.Errorf("gagal encode webp: %w", err)
	}

	targetDir := filepath.Join(dir, sub)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("gagal membuat folder upload: %w", err)
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename)) + ".webp"
	relPath := filepath.Join(sub, GenerateUniqueFilename(base))
	if err := os.WriteFile(filepath.Join(dir, relPath), buf.Bytes(), 0o644); err != nil {
		return "", 0, fmt.Errorf("gagal menulis file webp: %w", err)
	}
	return relPath, int64(buf.Len()), nil
}
