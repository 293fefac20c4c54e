package constants

/* ===============================
   Batasan upload per jenis file
=================================*/

const (
	MaxEssaySizeBytes    = 5 * 1024 * 1024 // PDF essay
	MaxHeadshotSizeBytes = 2 * 1024 * 1024
	MaxProofSizeBytes    = 5 * 1024 * 1024 // bukti transfer (image/PDF)

	// Sisi terpanjang headshot setelah normalisasi
	HeadshotMaxDimension = 1024
)

var EssayMimes = map[string]bool{
	"application/pdf": true,
}

var HeadshotMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var ProofMimes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}
