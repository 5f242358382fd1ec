package assets

import _ "embed"

// ModelsData holds the catalog of selectable AI models, grouped by provider.
//
//go:embed models.json
var ModelsData []byte

// IntegrationsData holds the integrations gallery.
//
//go:embed integrations.json
var IntegrationsData []byte
