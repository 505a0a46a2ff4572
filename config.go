package layouteditor

import "github.com/goliatone/go-layout-editor/internal/runtimeconfig"

var (
	ErrAPIBaseURLRequired      = runtimeconfig.ErrAPIBaseURLRequired
	ErrAPITimeoutInvalid       = runtimeconfig.ErrAPITimeoutInvalid
	ErrAutosaveIntervalInvalid = runtimeconfig.ErrAutosaveIntervalInvalid
	ErrItemsPerPageInvalid     = runtimeconfig.ErrItemsPerPageInvalid
	ErrDraftsPathRequired      = runtimeconfig.ErrDraftsPathRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	APIConfig     = runtimeconfig.APIConfig
	EditorConfig  = runtimeconfig.EditorConfig
	DraftsConfig  = runtimeconfig.DraftsConfig
	Features      = runtimeconfig.Features
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
