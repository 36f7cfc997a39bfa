package chat

// AnswerID identifies one canned response category.
type AnswerID string

const (
	AnswerCompanyInfo   AnswerID = "company_info"
	AnswerPricing       AnswerID = "pricing"
	AnswerTrial         AnswerID = "trial"
	AnswerHowItWorks    AnswerID = "how_it_works"
	AnswerFeatures      AnswerID = "features"
	AnswerIntegrations  AnswerID = "integrations"
	AnswerCustomization AnswerID = "customization"
	AnswerCapacity      AnswerID = "capacity"
	AnswerCallHandling  AnswerID = "call_handling"
	AnswerLanguages     AnswerID = "languages"
	AnswerSecurity      AnswerID = "security"
	AnswerIndustries    AnswerID = "industries"
	AnswerSupport       AnswerID = "support"
	AnswerComparisons   AnswerID = "comparisons"
	AnswerDemo          AnswerID = "demo"
	AnswerMisc          AnswerID = "misc"
	AnswerDefault       AnswerID = "default"
)

// cannedAnswers maps answer IDs to their static response text. Answers are
// multi-line and ready to render as-is.
var cannedAnswers = map[AnswerID]string{
	AnswerCompanyInfo: `FrontDesk AI is an AI-powered receptionist that answers your business phone 24/7. We pick up every call, answer questions about your business, and book appointments directly onto your calendar.

Thousands of calls go unanswered at small businesses every day. We make sure yours aren't among them.`,

	AnswerPricing: `Our pricing is simple:

Starter ($149/month): 24/7 call answering, appointment booking, up to 200 calls.
Growth ($299/month): everything in Starter, plus call transfers, custom scripts, and unlimited calls.

Every plan starts with a 14-day free trial, no credit card required. Want me to get you set up?`,

	AnswerTrial: `Yes! Every plan includes a 14-day free trial, no credit card required. Your AI receptionist can be answering calls within about 10 minutes of signing up.

Want to start your trial now? I just need a few details.`,

	AnswerHowItWorks: `Getting started takes about 10 minutes:

1. Tell us about your business: services, hours, FAQs.
2. We forward your existing number (or give you a new one).
3. Your AI receptionist starts answering calls, taking messages, and booking appointments.

You keep full visibility: every call is transcribed and appears in your dashboard instantly.`,

	AnswerFeatures: `Your AI receptionist can:

- Answer every call 24/7, even holidays
- Book, reschedule, and cancel appointments on your calendar
- Answer questions about your services, hours, and pricing
- Take detailed messages and text them to you instantly
- Transfer urgent calls to your cell

Anything specific you'd like to hear more about?`,

	AnswerIntegrations: `We sync directly with Google Calendar, Outlook, and Calendly, so appointments land on the calendar you already use. Double-bookings are prevented automatically.

We also push call summaries and new leads into popular CRMs. If you use something specific, ask and I'll check.`,

	AnswerCustomization: `Absolutely. You control how your receptionist sounds and what it says. You can customize the greeting, the voice, which questions it handles, and when it should transfer a call to a human.

Most owners fine-tune their setup in under 15 minutes from the dashboard.`,

	AnswerCapacity: `Unlike a human receptionist, your AI can handle unlimited simultaneous calls. If ten customers call at once during your busiest hour, all ten get answered immediately, with no hold music, no voicemail.`,

	AnswerCallHandling: `Every call is recorded and transcribed, and the transcript appears in your dashboard within seconds of hangup.

For urgent matters you define, like an emergency plumbing call, the AI transfers the caller straight to your cell phone. Everything else becomes a tidy message you can read on your own time.`,

	AnswerLanguages: `Our receptionists speak natural, fluent English and Spanish, and can switch languages mid-call if the caller does. You can also choose from several voices to match your brand.

Callers regularly tell our customers they had no idea they were talking to an AI.`,

	AnswerSecurity: `Security is foundational for us. All call data is encrypted in transit and at rest, and we are HIPAA compliant for medical and dental practices and will sign a BAA on request.

You own your data. We never sell it, and you can export or delete it at any time.`,

	AnswerIndustries: `We serve law firms, medical and dental practices, home services (HVAC, plumbing, electrical), real estate, salons and spas, and many others.

The receptionist is trained on your specific business, so it handles the questions your callers actually ask.`,

	AnswerSupport: `Our support team is available 7 days a week via chat and email, and Growth plans include priority phone support.

If you'd rather talk to a human right now, leave your details here and someone from our team will reach out within the hour.`,

	AnswerComparisons: `Compared to a traditional answering service, FrontDesk AI answers instantly (no hold queue), never misreads your notes, costs a fraction of the price, and actually books appointments instead of just taking messages.

As for voicemail: 80% of callers who hit voicemail hang up and call your competitor.`,

	AnswerDemo: `You can hear it live right now. Call our demo line at (555) 012-3456 and chat with the receptionist yourself.

Or start a free trial and hear it answering with your own business details within 10 minutes.`,

	AnswerMisc: `Happy to help! Ask me anything about FrontDesk AI, or say "start trial" when you're ready to try it yourself.`,

	AnswerDefault: `Good question! I don't have a canned answer for that one, but our team does. Leave your email and we'll follow up, or ask me about pricing, features, integrations, or how it all works.`,
}

// AnswerText returns the canned response for an answer ID. Unknown IDs fall
// back to the default answer so the widget never goes silent.
func AnswerText(id AnswerID) string {
	if text, ok := cannedAnswers[id]; ok {
		return text
	}
	return cannedAnswers[AnswerDefault]
}
