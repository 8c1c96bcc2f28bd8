package assets

import (
	"fmt"

	"github.com/kulugary/mediahub/internal/config"
)

// NewStore builds the asset store named by the configuration. Unknown
// backends are an error rather than a silent fallback.
func NewStore(cfg *config.AssetsConfig) (Store, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStore(cfg.Dir, cfg.PublicPrefix), nil
	case "s3", "r2":
		return NewS3Store(&S3Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			PublicURL: cfg.PublicURL,
		})
	default:
		return nil, fmt.Errorf("unknown asset backend %q", cfg.Backend)
	}
}
