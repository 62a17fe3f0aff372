package engine

// LLM prompt templates — data only, no logic.

// SystemMentor is the system prompt shared by the guide drafting calls.
const SystemMentor = "You are an expert project mentor creating detailed, practical project guides for students and makers."

// SystemResourceFinder is the system prompt of the suggestion provider.
const SystemResourceFinder = "You recommend real, existing learning resources. Never invent links."

// SuggestVideosPrompt asks for tutorial videos in the labelled block layout the resource parser reads.
// Args: query, context lines.
const SuggestVideosPrompt = `Recommend up to 6 YouTube tutorials for: %s
%s
Use this exact layout for every video, one block per video, blank line between blocks:

Title: <video title>
Channel: <channel name>
Duration: <length, e.g. 24:10 or 1h 5m>
Views: <view count, e.g. 1.2M views>
Description: <one sentence>
https://www.youtube.com/watch?v=<id>

Only list videos you are confident exist. Prefer complete, step-by-step builds over short clips.`

// SuggestReposPrompt asks for repositories in the same labelled block layout.
// Args: query, context lines.
const SuggestReposPrompt = `Recommend up to 5 GitHub repositories implementing: %s
%s
Use this exact layout for every repository, blank line between blocks:

Repository: <owner/name>
Stars: <star count>
Description: <one sentence>
https://github.com/<owner>/<name>

Only list repositories you are confident exist. Skip coursework and hello-world repositories.`

// GuidePrompt generates a project guide as JSON.
// Args: subject, field, project type, complexity, user requirements, difficulty.
const GuidePrompt = `Generate a comprehensive project guide for: %s

Context:
- Field: %s
- Project Type: %s
- Complexity Level: %s
- User Requirements: %s

Create a detailed, practical project plan that's educational and achievable.
Focus on clear learning outcomes and step-by-step implementation.

Respond with valid JSON only:
{
  "title": "Project title",
  "short_description": "What the project does and its real-world applications",
  "detailed_description": "Overview and learning objectives, prerequisites, step-by-step implementation, key concepts, testing and validation, extensions, common challenges",
  "components": [
    {"name": "Component name", "purpose": "What it does and why it is needed", "specs": "Specifications, model numbers, where to buy"}
  ],
  "frameworks": ["Framework1", "Framework2", "Framework3"],
  "difficulty_level": "%s",
  "estimated_time": "X weeks"
}`

// TrendingPrompt asks for six trending project ideas in a field.
// Args: field.
const TrendingPrompt = `Generate 6 trending and popular project ideas for the field: %s

Focus on projects that are currently relevant in industry, skill-building, implementable with
available resources and suitable for a range of levels from beginner to advanced.

Respond with valid JSON only:
{
  "projects": [
    {
      "title": "Project name",
      "description": "2-3 sentences on what it does and why it is trending",
      "difficulty": "Beginner/Intermediate/Advanced",
      "category": "Semester Project/FYP/Hobby Project/Industry Project",
      "key_technologies": ["Tech1", "Tech2", "Tech3"],
      "why_trending": "Why this project is popular right now"
    }
  ]
}`

// RefinementPrompt asks one focused question about a project.
// Args: subject, field, project type, complexity, previous answers.
const RefinementPrompt = `You are helping a student refine their project idea: %s

Current context:
- Field: %s
- Project Type: %s
- Complexity Level: %s
- Previous responses: %s

Ask ONE specific question about scope and features, preferred components or libraries, target
audience, integrations or performance constraints. Do not ask about timelines or budgets.
Respond with just the question.`
