package prompt

import (
	"fmt"
	"strings"

	"github.com/snappy-loop/studio/internal/models"
)

// BuildScriptPrompt renders the generation prompt for a script request.
// Output depends only on the request, so identical requests give identical prompts.
func BuildScriptPrompt(req models.ScriptRequest) string {
	audience := strings.Join(req.Audience, ", ")
	if audience == "" {
		audience = "General Audience"
	}
	include := req.Include
	if len(include) == 0 {
		include = models.DefaultSections
	}
	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		notes = "None"
	}

	if req.Style == models.StyleOutline {
		return fmt.Sprintf(outlineTemplate,
			req.Topic, req.Language, audience, req.Topic, req.Tone, req.Length, req.UseCase,
			strings.Join(include, ", "), notes, req.Tone, audience, req.Length)
	}
	return fmt.Sprintf(detailedTemplate,
		req.Language, req.Topic, audience, req.Topic, req.Tone, req.Length, req.UseCase,
		strings.Join(include, ", "), notes, req.Tone, audience, req.Length)
}

// detailedTemplate must stay free of bullet markers: the model mirrors the prompt's formatting.
const detailedTemplate = `Write a COMPLETE, DETAILED YouTube script in %s about: %s

Script details:
Target audience: %s
Main points: %s
Tone and style: %s
Video length: %s
Use case: %s
Sections to include: %s

Additional notes: %s

IMPORTANT INSTRUCTIONS:
1. Open with a strong hook in the first few seconds to grab attention.
2. Structure the script with clear sections and headings such as INTRO, MAIN CONTENT and OUTRO.
3. Keep the %s tone throughout and tailor the language to this audience: %s.
4. This MUST BE A FULL SCRIPT with complete sentences and paragraphs, NOT bullet points.
5. Write exactly as the YouTuber would speak, with natural transitions and questions that invite viewer interaction.
6. Include relevant examples, anecdotes and stories to keep the video engaging.
7. Size the script for a %s video.
8. End with a strong call to action asking viewers to like, subscribe and comment.
9. DO NOT use bullet points anywhere in the script.

Format this as a complete speaking script that a YouTuber can read directly to camera.
`

const outlineTemplate = `Create a BULLET POINT OUTLINE for a YouTube video about: %s

Script details:
- Language: %s
- Target audience: %s
- Main points: %s
- Tone and style: %s
- Video length: %s
- Use case: %s
- Include: %s

Additional notes: %s

IMPORTANT INSTRUCTIONS:
- Start with a strong hook that grabs attention in the first few seconds.
- Format as a hierarchical bullet point outline with main points and sub-points.
- Organize into clear sections like INTRO, MAIN CONTENT, OUTRO.
- Match the %s tone and tailor every point to this audience: %s.
- Include key talking points only, not full sentences for everything.
- Include an appropriate number of points for a %s video.
- Finish with a call to action asking viewers to like, subscribe and comment.

Format this as a structured outline that a YouTuber can use as speaking notes.
`
