package economy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/tidepool/internal/validation"
)

// Load reads the economy config at path, validates it against the JSON schema at
// schemaPath and builds the Table. Any failure is a startup configuration defect.
func Load(path, schemaPath string, schemaValidator validation.SchemaValidator) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFailedFmt, path, err)
	}

	if err := schemaValidator.ValidateBytes(data, schemaPath); err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaValidationFmt, path, err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailedFmt, path, err)
	}

	return New(file.RarityTiers, file.Resources)
}
