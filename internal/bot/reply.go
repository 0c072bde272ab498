package bot

// Button ids sent with the welcome menu.
const (
	ButtonPrice = "PRICE"
	ButtonLegal = "LEGAL"
	ButtonFAQ   = "FAQ"
)

// FAQ topic ids, also reachable by their numeric selectors 1-4.
const (
	TopicWhat  = "WHAT"
	TopicWhy   = "WHY"
	TopicFree  = "FREE"
	TopicAreas = "AREAS"
)

type ReplyKind int

const (
	ReplyText ReplyKind = iota
	ReplyButtons
	ReplyCTA
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyButtons:
		return "buttons"
	case ReplyCTA:
		return "cta_url"
	default:
		return "text"
	}
}

type ButtonOption struct {
	ID    string
	Title string
}

// Reply is one outbound message. Kind selects which fields are meaningful.
type Reply struct {
	Kind ReplyKind
	Body string

	// ReplyButtons (WhatsApp allows at most 3)
	Buttons []ButtonOption

	// ReplyCTA
	Display string
	URL     string
}

const siteURL = "https://rerafy.com"

const welcomeBody = "Hi! I'm the *Rerafy* assistant. 🏠\n\n" +
	"We verify properties before you buy — price fairness, legal standing, " +
	"RERA registration and more.\n\n" +
	"What would you like to check?"

const faqMenuBody = "Quick answers — just reply with a number:\n\n" +
	"*1.* What is Rerafy?\n" +
	"*2.* Why verify before buying?\n" +
	"*3.* Is it free?\n" +
	"*4.* Which cities do you cover?"

const projectPromptBody = "Great! Please share the *project name* or *location* " +
	"you'd like us to check, and our team will get back to you shortly."

const fallbackBody = "We couldn't find that topic, but everything we do is on our website."

var faqAnswers = map[string]string{
	TopicWhat: "Rerafy is an independent property verification service. Before " +
		"you commit to a purchase, we check the project's pricing, paperwork " +
		"and regulatory status and send you a plain-language report.",
	TopicWhy: "Builders rarely volunteer bad news. Verifying before you buy " +
		"catches inflated pricing, missing approvals and title disputes while " +
		"you can still walk away.",
	TopicFree: "The basic check is free. Detailed legal and price reports are " +
		"paid, with pricing depending on the project — ask us for a quote.",
	TopicAreas: "We currently cover Mumbai, Pune, Bengaluru, Hyderabad and the " +
		"Delhi NCR, and we're adding cities regularly.",
}

// selector maps the numeric FAQ selectors to topic ids.
var selectors = map[string]string{
	"1": TopicWhat,
	"2": TopicWhy,
	"3": TopicFree,
	"4": TopicAreas,
}

func welcomeMenu() Reply {
	return Reply{
		Kind: ReplyButtons,
		Body: welcomeBody,
		Buttons: []ButtonOption{
			{ID: ButtonPrice, Title: "Price Check"},
			{ID: ButtonLegal, Title: "Legal Check"},
			{ID: ButtonFAQ, Title: "FAQs"},
		},
	}
}

func faqMenu() Reply {
	return Reply{Kind: ReplyText, Body: faqMenuBody}
}

func projectPrompt() Reply {
	return Reply{Kind: ReplyText, Body: projectPromptBody}
}

// answerFor resolves a topic id or numeric selector to its canned answer.
// Unknown keys get the website fallback instead of an error.
func answerFor(key string) Reply {
	if topic, ok := selectors[key]; ok {
		key = topic
	}
	if body, ok := faqAnswers[key]; ok {
		return Reply{Kind: ReplyText, Body: body}
	}
	return Reply{Kind: ReplyCTA, Body: fallbackBody, Display: "Visit Rerafy", URL: siteURL}
}
