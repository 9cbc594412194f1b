package services

import (
	"fmt"

	"alfredoptarigan/resume-forge/internal/models"
)

// TaskTemplate is the fixed instruction text and expected response shape of
// one task variant.
type TaskTemplate struct {
	Variant models.TaskVariant
	Prompt  string
	Schema  string
}

var taskTemplates = map[models.TaskVariant]TaskTemplate{
	models.VariantATSMatch: {
		Variant: models.VariantATSMatch,
		Prompt:  atsMatchPrompt,
		Schema:  atsMatchSchema,
	},
	models.VariantPortfolioMulti: {
		Variant: models.VariantPortfolioMulti,
		Prompt:  portfolioMultiPrompt,
		Schema:  portfolioMultiSchema,
	},
	models.VariantPortfolioSingle: {
		Variant: models.VariantPortfolioSingle,
		Prompt:  portfolioSinglePrompt,
		Schema:  portfolioSingleSchema,
	},
}

// TemplateFor returns the instruction template of variant.
func TemplateFor(variant models.TaskVariant) (TaskTemplate, error) {
	tpl, ok := taskTemplates[variant]
	if !ok {
		return TaskTemplate{}, fmt.Errorf("no template for task variant %q", variant)
	}
	return tpl, nil
}

// BuildCompletionRequest packages the variant's instructions with the
// résumé bytes.
func BuildCompletionRequest(variant models.TaskVariant, attachment []byte) (models.CompletionRequest, error) {
	tpl, err := TemplateFor(variant)
	if err != nil {
		return models.CompletionRequest{}, err
	}

	return models.CompletionRequest{
		Variant:    variant,
		Prompt:     tpl.Prompt,
		Attachment: attachment,
		MimeType:   "application/pdf",
	}, nil
}

const atsMatchPrompt = `You are a system that analyzes resumes against job descriptions. You must extract key data from the resume and compare it with the job posting. Respond with JSON containing:

{
  "job_position": "string",
  "ats_score": "percentage",
  "matched_keywords": ["string"],
  "missing_keywords": ["string"],
  "suggestions": ["string"],
  "recommendations": ["string"]
}

Modules you have:
- ResumeParser: Extracts text, keywords, contact info, education, and experience from resume.
- JobDescriptionParser: Parses job description for required skills, title, experience.
- ATSMatcher: Matches resume with job description and calculates ATS score.
- SuggestionEngine: Provides suggestions for resume improvement.
- JSONOutputFormatter: Outputs everything in clean structured JSON.

Now analyze the resume and return results based on this format.
`

const portfolioMultiPrompt = `You are a world-class UI/UX AI. Generate a premium, award-winning personal portfolio website from the resume below.

Output:
{
  "html": "<FULL valid HTML with head and body>",
  "css": "<Tailwind CSS + custom styles>",
  "javascript": "<Linked JS file with working scripts - no comments>"
}

Must Include:
- Real links (GitHub, LinkedIn, Projects, Email) from resume only
- CDN links for Tailwind CSS, GSAP, Google Fonts (IBM Plex Mono, Inter, etc.)
- Responsive <head> with meta viewport, title, favicon if available
- Gender/name-based avatar or use this default image if not found:
  https://i.ibb.co/gpJXs27/yash2.jpg
- NO dummy links or "#" - only working links from the resume or skip that button

Design System:
- Rich color palette (Pantone/gradient), glassmorphism backgrounds
- Kinetic typography (animated name), glowing effects, soft shadows
- Particle background using CSS/JS (minimal)
- Responsive and mobile-friendly layout
- No comments, no placeholders, no broken links

Required Sections:

1. HERO SECTION:
- Animated gradient background, glass particles, glowing avatar
- Full name in 48px kinetic text
- Job title in 22px gray text
- Summary in 18px muted text
- Location in pink-colored text
- "Hire Me!" CTA + social links (GitHub, LinkedIn, Twitter, Email)
- 3 floating CTA buttons: Resume (PDF), Projects, Contact

2. WORK EXPERIENCE:
- Each job with: company logo, job title (22px bold), company name (16px gray), date (pill badge)
- Monospace layout (IBM Plex Mono)
- GSAP animations: fade-up or staggered

3. PROJECTS:
- "Proof of Work" badge with grid card layout
- Each card: image, name, date, live status badge, description, tech stack tags
- Buttons: "Website", "Source Code" (real links only)
- Responsive layout, GSAP hover/fade animations

4. EDUCATION:
- Degree name, institution, duration/date badge
- Logo/icon left-aligned, monospace font right
- Responsive mobile layout

5. SKILLS:
- Pill-style black tags with white text (React, TypeScript, etc.)
- Alphabetized or grouped by type (Frontend, Backend, Tools)
- Flex wrap layout

6. CONTACT:
- "Get in Touch" title
- Line: "Want to chat? DM on Twitter" or "Email me" if no Twitter
- Use real email or Twitter from resume
- Clean, centered, monospace

7. FOOTER:
- Resume owner's name, real social icons, email
- No dummy links
- Monospaced font, soft hover effects, responsive stack, top border

8. EXTRA SECTIONS (Optional):
- If the resume includes additional sections (Certifications, Volunteering, Awards, etc.), render them with matching style and animation.

Tech Stack:
- GSAP, Tailwind CSS, CSS 3D transforms, scroll snapping
- Lazy-load images
- 95+ Lighthouse performance
- Fully accessible with semantic HTML and ARIA

Do NOT include:
- Any markdown
- Any placeholder URLs
- Any comments in code
- Any explanation text

Output valid JSON only, exactly in this structure:
{
  "html": "...",
  "css": "...",
  "javascript": "..."
}`

const portfolioSinglePrompt = `You are a world-class UI/UX AI. Generate a premium, award-winning personal portfolio website based on the resume below, delivered as ONE self-contained HTML document.

Output format:
{
  "html": "<FULL valid HTML document with head and body, all CSS inside <style> and all scripts inside <script>>"
}

MUST include:
- CDN links for Tailwind, GSAP, Google Fonts
- Functional <head> and responsive meta tags
- NO placeholders like "#" or "javascript:void(0)"
- Real links:
   - GitHub, LinkedIn from resume
   - Projects: actual URLs only or skip
   - Contact: working mailto/email and #anchors
- Intelligent gender-based avatar (use male/female)

Premium Modules:
- LuxuryDesignEngine: glassmorphism, kinetic typography, 3D transforms
- PantoneColorCurator: beautiful color palettes, gradients
- GSAPAnimationSystem: buttery-smooth animations
- MicroInteractionLab: hover states, feedback, parallax
- AdaptiveLayoutAI: responsive with smart breakpoints
- PerformanceOptimizer: 95+ Lighthouse score
- AccessibilityEngine: ARIA, alt text, semantic HTML

Sections Required:
1. HERO: animated gradient bg, particle effects, glowing avatar, kinetic name, floating CTA
2. NAVBAR: glassmorphism, dark/light toggle, animated links
3. ABOUT: animated timeline, SVG icons
4. SKILLS: radial charts with tooltips
5. PROJECTS: 3D card flips, real demo links
6. CONTACT: floating label form, mailto, validation

Tech:
- GSAP, Tailwind, CSS 3D, scroll snapping, lazy-load
- Responsive and mobile-friendly

NO markdown, NO explanation, NO comments. Output valid JSON only, with the single key "html".`
