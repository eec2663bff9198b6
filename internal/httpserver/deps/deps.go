package deps

import (
	"time"

	"github.com/sava-app/sava/internal/coordinator"
	"github.com/sava-app/sava/internal/domain"
	"github.com/sava-app/sava/internal/index"
	"github.com/sava-app/sava/internal/logger"
	"github.com/sava-app/sava/internal/thumb"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Collection  *index.Collection        // authoritative in-memory collection
	Coordinator *coordinator.Coordinator // only writer of the collection
	Thumbs      *thumb.Registry          // per-record thumbnail resolvers
	Detector    *domain.Detector         // hostname-based preview classification

	RefreshTrigger chan struct{} // channel to trigger a manual collection refresh

	AllowedOrigins []string // CORS origins for the view layer
	AllowedCIDRS   []string // IPs allowed on ops endpoints (diagnostics/refresh)
	TrustProxy     bool     // true if running behind a trusted reverse proxy

	MutationBurst        int // rate limit burst on mutation endpoints
	MutationRefillPerMin int // rate limit refill on mutation endpoints
}
