package seed

import "github.com/mukheshvadlamudi/MailFlow/internal/model"

// SampleEmails is the demo inbox.
var SampleEmails = []model.NewEmail{
	// meeting requests
	{
		Sender:    "john@company.com",
		Recipient: "you@company.com",
		Subject:   "Q4 Budget Meeting",
		Body:      "Can we schedule a meeting next week to discuss Q4 budget? Please send me your availability.",
		Priority:  model.PriorityHigh,
	},
	{
		Sender:    "sarah.johnson@techcorp.com",
		Recipient: "you@company.com",
		Subject:   "Product Demo Request",
		Body:      "Hi, I'd like to schedule a product demo for our team next Tuesday at 2 PM. Could you please confirm if this works for you?",
		Priority:  model.PriorityHigh,
	},
	{
		Sender:    "mike.chen@startup.io",
		Recipient: "you@company.com",
		Subject:   "Coffee Meeting Next Week?",
		Body:      "Hey! Would love to catch up and discuss potential collaboration opportunities. Are you free for coffee next Wednesday or Thursday?",
		Priority:  model.PriorityMedium,
	},

	// task requests
	{
		Sender:    "sarah@company.com",
		Recipient: "you@company.com",
		Subject:   "Action Required: Training Completion",
		Body:      "Please complete the mandatory security training modules by Friday EOD. The deadline is strict due to compliance requirements.",
		Priority:  model.PriorityHigh,
	},
	{
		Sender:    "hr@company.com",
		Recipient: "you@company.com",
		Subject:   "Urgent: Expense Report Submission",
		Body:      "Your expense report for October is pending. Please submit it by November 30th to ensure timely reimbursement.",
		Priority:  model.PriorityHigh,
	},
	{
		Sender:    "david.kumar@agency.com",
		Recipient: "you@company.com",
		Subject:   "Design Feedback Needed",
		Body:      "Could you review the attached design mockups and provide feedback by end of week? We need your input before moving to development.",
		Priority:  model.PriorityMedium,
	},

	// project updates
	{
		Sender:    "project-manager@company.com",
		Recipient: "you@company.com",
		Subject:   "Project Alpha - Status Update",
		Body:      "Weekly update: Project Alpha is 75% complete. Next milestone is user testing scheduled for Dec 5. Please review the test plan in the shared folder.",
		Priority:  model.PriorityMedium,
	},
	{
		Sender:    "dev-team@company.com",
		Recipient: "you@company.com",
		Subject:   "Sprint Review Summary",
		Body:      "Sprint 12 completed successfully. We delivered 18 story points and fixed 12 bugs. Next sprint planning is Monday at 10 AM.",
		Priority:  model.PriorityLow,
	},
	{
		Sender:    "lisa.martinez@partner.com",
		Recipient: "you@company.com",
		Subject:   "Q4 Partnership Review",
		Body:      "Attached is the Q4 partnership performance report. Revenue increased by 23%. Let's discuss expansion opportunities in our next call.",
		Priority:  model.PriorityMedium,
	},

	// newsletters
	{
		Sender:    "newsletter@tech.com",
		Recipient: "you@company.com",
		Subject:   "Weekly Tech News Digest",
		Body:      "Your weekly digest of technology news: AI breakthroughs, new programming languages, and industry trends. Click here to read more.",
		Priority:  model.PriorityLow,
	},
	{
		Sender:    "info@aiweekly.com",
		Recipient: "you@company.com",
		Subject:   "AI Weekly: Latest in Machine Learning",
		Body:      "This week's highlights: GPT-5 rumors, new computer vision models, and AI ethics debates. Plus upcoming ML conferences.",
		Priority:  model.PriorityLow,
	},
	{
		Sender:    "updates@github.com",
		Recipient: "you@company.com",
		Subject:   "GitHub: Your Weekly Activity Summary",
		Body:      "You had 15 commits this week across 3 repositories. Your most active project: email-agent. Stars received: 8.",
		Priority:  model.PriorityLow,
	},

	// spam
	{
		Sender:    "deals@randomshop.com",
		Recipient: "you@company.com",
		Subject:   "URGENT: 90% OFF Everything! Limited Time!",
		Body:      "Amazing deals! Click now to save big! Don't miss out on this incredible opportunity! Act fast before it's too late!",
		Priority:  model.PriorityLow,
	},
	{
		Sender:    "noreply@promotions.net",
		Recipient: "you@company.com",
		Subject:   "You've Won a Free iPhone! Claim Now!",
		Body:      "Congratulations! You've been selected to receive a free iPhone 15. Click this link within 24 hours to claim your prize!",
		Priority:  model.PriorityLow,
	},

	// important business
	{
		Sender:    "ceo@company.com",
		Recipient: "you@company.com",
		Subject:   "Company-Wide Town Hall - December 1st",
		Body:      "Join us for our quarterly town hall next Friday at 3 PM. We'll discuss Q4 results, 2026 strategy, and team updates. Attendance is mandatory.",
		Priority:  model.PriorityHigh,
	},
	{
		Sender:    "legal@company.com",
		Recipient: "you@company.com",
		Subject:   "Contract Review Required",
		Body:      "Please review and sign the attached vendor contract by December 3rd. Legal has approved all terms. Contact me if you have questions.",
		Priority:  model.PriorityHigh,
	},

	// fyi
	{
		Sender:    "team@company.com",
		Recipient: "you@company.com",
		Subject:   "Office Holiday Party - Dec 20th",
		Body:      "Save the date! Our annual holiday party is on December 20th at 6 PM. Location: The Grand Hotel. RSVP by Dec 10th.",
		Priority:  model.PriorityMedium,
	},
	{
		Sender:    "facilities@company.com",
		Recipient: "you@company.com",
		Subject:   "Building Maintenance Notice",
		Body:      "FYI: Elevator maintenance scheduled for this Saturday 8 AM - 12 PM. Please use stairs if you're in the office.",
		Priority:  model.PriorityLow,
	},
	{
		Sender:    "it-support@company.com",
		Recipient: "you@company.com",
		Subject:   "Password Reset Reminder",
		Body:      "Your password will expire in 7 days. Please update it at your earliest convenience to avoid account lockout.",
		Priority:  model.PriorityMedium,
	},
	{
		Sender:    "recruiter@company.com",
		Recipient: "you@company.com",
		Subject:   "Referral Bonus Program",
		Body:      "Know someone great? Our referral program now offers $2000 bonus for successful hires. Share this with your network!",
		Priority:  model.PriorityLow,
	},
}

type PromptSeed struct {
	Name    string
	Type    string
	Content string
}

// DefaultPrompts are inserted only into an empty template table.
var DefaultPrompts = []PromptSeed{
	{
		Name:    "Categorization",
		Type:    model.PromptTypeCategorization,
		Content: "Categorize this email into: Important, Newsletter, Spam, or To-Do. Email: {subject} - {body}",
	},
	{
		Name:    "Action Extraction",
		Type:    model.PromptTypeActionExtraction,
		Content: "Extract action items and tasks from this email body: {body}",
	},
	{
		Name:    "Auto Reply",
		Type:    model.PromptTypeAutoReply,
		Content: "Write a professional reply to: Subject: {subject}, From: {sender}, Body: {body}",
	},
}
