package prompt

import (
	"fmt"

	"github.com/snappy-loop/studio/internal/models"
)

// BuildThumbnailAdvicePrompt asks for concrete ways to raise a thumbnail's click-through rate.
func BuildThumbnailAdvicePrompt(spec models.ThumbnailSpec) string {
	return fmt.Sprintf(`Provide 3-5 specific suggestions to improve a YouTube thumbnail with these details:

Title: %s
Style: %s
Color Scheme: %s

Focus on specific, actionable advice for creating a high-CTR thumbnail that stands out.
Include tips about composition, text placement, visual elements, and what top YouTubers
do for this type of content.
`, spec.Title, spec.Style, spec.ColorScheme)
}
