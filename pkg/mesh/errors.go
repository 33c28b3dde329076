package mesh

import "errors"

// Mesh processing errors. All are recoverable and returned to the immediate
// caller; the engine never retries or logs.
var (
	ErrUnsupportedTopology    = errors.New("unsupported primitive topology")
	ErrMissingAttribute       = errors.New("missing vertex attribute")
	ErrInvalidAttributeFormat = errors.New("invalid vertex attribute format")
)
