package generator

import "github.com/minicolabs/minutes-flow/internal/minutes"

// systemPrompt fixes the canonical minutes structure. Every primary
// generation request carries it.
const systemPrompt = `You are a Meeting Minutes Generator.
You MUST always use this exact structure:
1. Meeting Minutes
2. Meeting Title
3. Date
4. Type of Meeting
5. Attendees
6. Agenda
7. Meeting Summary
8. Key Discussions & Decisions
9. Timeframe & Weekly Action Plan
10. Conclusion
11. Minutes Taken By

Formatting rules:
- Mark top-level section headings with "## " and sub-headings with "### "
- Mark list items with "- "
- Use a formal, institutional tone
- No extraneous symbols and no meta-commentary; the output must stand alone as a finished document`

// derivativeSystemPrompt directs the persona for all derivative requests.
const derivativeSystemPrompt = `You are a professional meeting coordinator. Output only the requested document, with no meta-commentary.`

var featurePrompts = map[minutes.FeatureKind]string{
	minutes.FeatureFollowUp:    "Generate a professional post-meeting follow-up email thanking attendees and reiterating next steps.",
	minutes.FeatureBroadcast:   "Generate a concise broadcast-style announcement summary, using bullet points for key highlights only.",
	minutes.FeatureActionItems: "Create a formal Action Items table with columns: Task, Owner, Deadline, Status.",
	minutes.FeatureAttendance:  "Create a professional Attendance Tracking Sheet with columns Name, Organization/Role, Status (Present/Absent/Excused), derived from names mentioned in the minutes.",
}
