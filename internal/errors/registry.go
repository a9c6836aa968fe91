package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Reconcile Errors (R001-R099)
	// ============================================

	"R001": {
		Category: CategoryReconcile,
		Message:  "Render failed",
		Detail:   "A component's render function or a pre-render lifecycle method panicked.",
	},
	"R002": {
		Category: CategoryReconcile,
		Message:  "Ref callback failed",
		Detail:   "A ref callback panicked while receiving its value.",
	},
	"R003": {
		Category: CategoryReconcile,
		Message:  "Unmount hook failed",
		Detail:   "ComponentWillUnmount panicked during teardown.",
	},
	"R004": {
		Category: CategoryReconcile,
		Message:  "Commit callback failed",
		Detail:   "A callback queued for the commit phase panicked.",
	},
	"R005": {
		Category: CategoryReconcile,
		Message:  "Invalid virtual node",
		Detail:   "The node is not a well-formed text, element, fragment or component description.",
	},
	"R006": {
		Category: CategoryReconcile,
		Message:  "Component type cannot be instantiated",
		Detail:   "A component type needs either a constructor (New) or a render function (Render).",
	},

	// ============================================
	// Fixture Errors (F100-F199)
	// ============================================

	"F100": {
		Category: CategoryFixture,
		Message:  "Fixture could not be parsed",
	},
	"F101": {
		Category: CategoryFixture,
		Message:  "Fixture step is empty",
	},
	"F102": {
		Category: CategoryFixture,
		Message:  "Unknown fixture component",
	},
	"F103": {
		Category: CategoryFixture,
		Message:  "Fixture node is ambiguous",
		Detail:   "A node must declare exactly one of tag, text, component or fragment.",
	},
	"F104": {
		Category: CategoryFixture,
		Message:  "Dispatch target not found",
	},

	// ============================================
	// Config Errors (C120-C149)
	// ============================================

	"C120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
	},
	"C121": {
		Category: CategoryConfig,
		Message:  "Invalid server port",
	},
	"C122": {
		Category: CategoryConfig,
		Message:  "Unknown snapshot driver",
	},
	"C123": {
		Category: CategoryConfig,
		Message:  "S3 snapshot store needs a bucket",
	},
	"C124": {
		Category: CategoryConfig,
		Message:  "Unknown log level",
	},
	"C141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},

	// ============================================
	// Snapshot Errors (S150-S169)
	// ============================================

	"S150": {
		Category: CategorySnapshot,
		Message:  "Snapshot write failed",
	},
	"S151": {
		Category: CategorySnapshot,
		Message:  "Snapshot read failed",
	},
	"S152": {
		Category: CategorySnapshot,
		Message:  "Snapshot not found",
	},
	"S153": {
		Category: CategorySnapshot,
		Message:  "Invalid snapshot key",
	},
	"S154": {
		Category: CategorySnapshot,
		Message:  "Snapshot mismatch",
	},

	// ============================================
	// Server Errors (V170-V189)
	// ============================================

	"V170": {
		Category: CategoryServer,
		Message:  "Unknown host node",
	},
	"V171": {
		Category: CategoryServer,
		Message:  "Fixture step out of range",
	},
	"V172": {
		Category: CategoryServer,
		Message:  "Malformed frame",
	},
}

// Registered reports whether the code has a registered template.
func Registered(code string) bool {
	_, ok := registry[code]
	return ok
}
