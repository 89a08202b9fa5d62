package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/karibuclean/instock/internal/models"
)

// Classifier identifies a photographed product from a single still image.
// The returned candidate is advisory; the operator confirms the quantity
// before anything is committed.
type Classifier interface {
	Identify(ctx context.Context, imageJPEG []byte) (models.Identification, error)
}

// classifyPrompt encodes the brand-to-category lookup table. The mapping is
// part of the external contract: the model does the reading, this prompt
// tells it where known regional brands belong.
const classifyPrompt = `Identify this product for a Kenyan cleaning business inventory.
Read the label text carefully to find the Brand Name and Product Type.

Specific Mappings:
- 'OMO', 'Persil', 'Sunlight' -> Map to 'Detergent' (Category: Chemicals)
- 'Jik', 'Clorox' -> Map to 'Bleach' (Category: Chemicals)
- 'Harpic' -> Map to 'Toilet Cleaner' (Category: Chemicals)
- 'Pledge' -> Map to 'Furniture Polish' (Category: Chemicals)
- 'Blueband', 'Prestige' -> Map to 'Margarine' (Category: Kitchen)
- 'Colgate', 'Aquafresh' -> Map to 'Toothpaste' (Category: General)
- 'Downy', 'Comfort' -> Map to 'Fabric Softener' (Category: Chemicals)
- 'Vim', 'Axion' -> Map to 'Scouring Paste' (Category: Soaps)

Construct the 'name' as "Brand + Type" (e.g. "OMO Detergent", "Blueband Margarine").

Return JSON only with:
- name: string
- category: One of ['Chemicals', 'Soaps', 'Tools', 'PPE', 'Paper Products', 'Kitchen', 'General']
- quantityEstimate: number (default 1)
- confidence: 'High' | 'Medium' | 'Low'`

// LLMClassifier asks the configured model to read on-package branding.
type LLMClassifier struct {
	model *Model
}

var _ Classifier = (*LLMClassifier)(nil)

// NewClassifier creates a Classifier on top of a Model.
func NewClassifier(model *Model) *LLMClassifier {
	return &LLMClassifier{model: model}
}

// Identify sends the image with the fixed instruction prompt and parses the
// single candidate object. A category outside the fixed set is passed
// through untouched; local validation would only get in the operator's way.
func (c *LLMClassifier) Identify(ctx context.Context, imageJPEG []byte) (models.Identification, error) {
	reply, err := c.model.GenerateVision(ctx, classifyPrompt, imageJPEG)
	if err != nil {
		return models.Identification{}, fmt.Errorf("classify call: %w", err)
	}

	var ident models.Identification
	if err := json.Unmarshal([]byte(extractJSON(reply)), &ident); err != nil {
		return models.Identification{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if ident.Name == "" {
		return models.Identification{}, fmt.Errorf("%w: candidate has no name", ErrBadResponse)
	}
	if ident.QuantityEstimate <= 0 {
		ident.QuantityEstimate = 1
	}

	return ident, nil
}
