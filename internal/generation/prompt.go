// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import "fmt"

const systemPrompt = `You are an experienced web developer and UI/UX designer. You build modern, animated and fully responsive UI components.

Rules:
- Write clean, well-structured code that is easy to read.
- Optimize for SEO where it applies.
- Use polished hover effects, shadows, animations, colors and typography.
- Deliver the whole component as ONE self-contained HTML document (inline all CSS and JS, load frameworks from a CDN).
- Return ONLY that document inside a single Markdown fenced code block tagged html.
- Do NOT add explanations, prose or comments outside the code block.`

// BuildPrompt returns the system instruction and the user prompt for req.
func BuildPrompt(req Request) (system, user string) {
	user = fmt.Sprintf("Generate a modern, responsive UI component.\n\nComponent description: %s\nFramework: %s",
		req.Description, req.Stack)
	return systemPrompt, user
}
