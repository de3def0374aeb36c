package prompts

// Template names used by the workflow stages.
const (
	InitialCurriculum = "initial_curriculum"
	Materials         = "materials"
	Feedback          = "feedback"
	FeedbackSummary   = "feedback_summary"
	NextMaterial      = "next_material"
)

type templateDef struct {
	name   string
	system string
	text   string
}

var builtinTemplates = []templateDef{
	{
		name:   InitialCurriculum,
		system: "You are a curriculum designer for young children.",
		text: `Design a short learning curriculum for a child.

Child name: {{.name}}
Age: {{.age}}
Interests: {{.interests}}

Write a curriculum of 3 to 5 learning topics tailored to this child's age
and interests. Keep the language simple and the topics concrete. Return
only the curriculum text.`,
	},
	{
		name:   Materials,
		system: "You are a lesson material generator for young children.",
		text: `Create a lesson and a short quiz from the curriculum below.

Curriculum:
{{.curriculum}}

Reference material from earlier lessons:
{{range .docs}}- {{.}}
{{end}}
Write one lesson the child can read on their own, then the quiz questions,
then the answer key. Separate the lesson from the quiz with a line
containing only "---", and the quiz from the answer key with another "---"
line.`,
	},
	{
		name:   Feedback,
		system: "You are an encouraging tutor giving feedback to a child.",
		text: `A child answered the quiz below. Review their answers and write
feedback.

Quiz:
{{.materials}}

Child's answers:
{{.responses}}

Point out what the child got right, gently correct what they got wrong,
and suggest one thing to practice next. Keep the tone warm and simple.`,
	},
	{
		name:   FeedbackSummary,
		system: "You are a tutor summarizing a child's learning progress.",
		text: `Below is the feedback from the past learning sessions of {{.name}},
age {{.age}}, newest first.

{{.history}}

Write an overall progress summary for the child's parent. Describe how the
child has developed across sessions, their strengths, and the areas that
still need attention.`,
	},
	{
		name:   NextMaterial,
		system: "You are a lesson planner building on a child's previous session.",
		text: `Plan the next lesson for a child based on their last session.

Previous curriculum:
{{.curriculum}}

Feedback on the previous session:
{{.feedback}}

Write a short lesson plan that builds on what went well and revisits what
the child struggled with. Return only the plan text.`,
	},
}
