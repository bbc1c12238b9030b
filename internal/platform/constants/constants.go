// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Cooldowns: Per-actor issuance windows for direct-upload URLs.
  - Security: JWT issuers and header names.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "musicbook-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// CollaboratorTimeout bounds every outbound call to an external
	// collaborator (image host, song catalog).
	CollaboratorTimeout = 10 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Upload Cooldowns
//
// Direct-upload URL issuance is capped per actor inside a fixed window.
// The counters live in Redis so the cap holds across service instances.

const (
	// BookImageUploadMax is how many book-image URL requests an actor may
	// make within [BookImageUploadWindow].
	BookImageUploadMax = 3

	// BookImageUploadWindow is the cooldown window for book-image uploads.
	BookImageUploadWindow = 10 * time.Minute

	// SourceImageUploadMax is how many source-image URL requests an actor
	// may make within [SourceImageUploadWindow].
	SourceImageUploadMax = 3

	// SourceImageUploadWindow is the cooldown window for source-image uploads.
	SourceImageUploadWindow = 60 * time.Second
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "musicbook.kr"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCore   = "core"
	SchemaSocial = "social"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixCooldown namespaces issuance-cooldown counters.
	// Full key shape: cooldown:<resource_class>:<actor_id>
	RedisPrefixCooldown = "cooldown:"
)

// # Cooldown Resource Classes

const (
	// ResourceClassBookImage gates book thumbnail/background URL issuance.
	ResourceClassBookImage = "book_img_upload_url"

	// ResourceClassSourceImage gates artist/album thumbnail URL issuance.
	ResourceClassSourceImage = "music_source_img_upload_url"
)
