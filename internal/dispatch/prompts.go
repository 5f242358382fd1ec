package dispatch

import "strings"

const systemPrompt = `You are Bhindi AI, a helpful and intelligent assistant. You can help with:
- Answering questions and providing information
- Scheduling reminders and tasks
- Web searches and research
- File analysis and processing
- Code generation and debugging
- Creative writing and brainstorming
- Math and calculations
- And much more!

Be helpful, concise, and friendly. If you need to perform actions like scheduling or web searches, explain what you would do in a real implementation.`

type cannedRule struct {
	keywords []string
	reply    func(message string) string
}

func fixed(s string) func(string) string {
	return func(string) string { return s }
}

// cannedRules are checked in order; the first rule with a matching keyword wins.
var cannedRules = []cannedRule{
	{keywords: []string{"schedule", "remind"}, reply: fixed(scheduleReply)},
	{keywords: []string{"search", "find"}, reply: fixed(searchReply)},
	{keywords: []string{"file", "upload"}, reply: fixed(fileReply)},
	{keywords: []string{"what can you", "help"}, reply: fixed(helpReply)},
	{keywords: []string{"code", "program"}, reply: fixed(codeReply)},
}

// CannedReply picks the local-mode reply for message.
func CannedReply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range cannedRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply(message)
			}
		}
	}
	return defaultReply(message)
}

const scheduleReply = `I'd be happy to help you schedule that! In a full implementation, I would:

1. Parse your request for date/time information
2. Create a reminder in your calendar
3. Set up notifications
4. Confirm the scheduled item

For now, this is a demo version. To enable full scheduling functionality, you would need to:
- Connect your calendar (Google Calendar, Outlook, etc.)
- Set up notification services
- Configure the scheduling backend

What would you like to schedule?`

const searchReply = `I can help you search for information! In the full version, I would:

1. Perform web searches using search engines
2. Analyze and summarize results
3. Provide relevant links and sources
4. Filter information based on your needs

For this demo, I can provide general information and guidance. What would you like to search for?`

const fileReply = `Great! I can help you work with files. In the full implementation, I would:

1. **Analyze documents**: Extract text, summarize content
2. **Process images**: Describe, analyze, extract text (OCR)
3. **Handle code files**: Review, debug, explain
4. **Work with data**: Parse CSV, JSON, analyze spreadsheets

You can upload files using the paperclip icon in the chat. What type of file would you like to work with?`

const helpReply = `I'm Bhindi AI, your intelligent assistant! Here's what I can help you with:

🤖 **Chat & Conversation**
- Answer questions on any topic
- Provide explanations and tutorials
- Help with creative writing

📅 **Scheduling & Reminders**
- Set up reminders and tasks
- Schedule meetings and events
- Time management assistance

📁 **File Processing**
- Analyze documents and images
- Extract and summarize content
- Code review and debugging

🔍 **Web Search & Research**
- Find information online
- Summarize articles and papers
- Research assistance

⚙️ **Integrations** (Premium)
- Connect with your favorite apps
- Automate workflows
- Sync data across platforms

This is a demo version showcasing the free features. What would you like to try first?`

const codeReply = "I'd love to help you with coding! I can assist with:\n\n" +
	"**Programming Languages:**\n" +
	"- JavaScript/TypeScript, Python, Java, C++, Go, Rust\n" +
	"- HTML/CSS, React, Vue, Angular\n" +
	"- SQL, NoSQL databases\n" +
	"- And many more!\n\n" +
	"**What I can do:**\n" +
	"- Write code from scratch\n" +
	"- Debug and fix issues\n" +
	"- Explain complex concepts\n" +
	"- Code reviews and optimization\n" +
	"- Architecture suggestions\n\n" +
	"**Example:**\n" +
	"```javascript\n" +
	"// Simple React component\n" +
	"function Welcome({ name }) {\n" +
	"  return <h1>Hello, {name}!</h1>;\n" +
	"}\n" +
	"```\n\n" +
	"What programming task can I help you with?"

func defaultReply(message string) string {
	return `Hello! I'm Bhindi AI, your intelligent assistant. I understand you said: "` + message + `"

I'm here to help you with a wide variety of tasks including:
- Answering questions and providing information
- Scheduling and reminders
- File analysis and processing
- Web searches and research
- Code generation and debugging
- Creative tasks and brainstorming

This is a demo version showcasing the core free features. In a full implementation, I would have access to real-time data, scheduling systems, and various integrations.

How can I assist you today? Feel free to ask me anything or try uploading a file to see how I can help analyze it!`
}
