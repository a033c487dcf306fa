package models

// IntentKind is the coarse action a message requests.
type IntentKind int

const (
	IntentHelp IntentKind = iota
	IntentCreate
	IntentListEvents
	IntentCancel
)

func (k IntentKind) String() string {
	switch k {
	case IntentCreate:
		return "create"
	case IntentListEvents:
		return "list"
	case IntentCancel:
		return "cancel"
	default:
		return "help"
	}
}

// CancelTarget selects the event to cancel, either by 1-based index or by a
// fuzzy title fragment. Index is zero when the title is used.
type CancelTarget struct {
	Index int
	Title string
}

// HasIndex reports whether the target is positional.
func (t CancelTarget) HasIndex() bool {
	return t.Index > 0
}

// Intent is the classification of one message. Keyword is the vocabulary word
// that decided it, empty when nothing matched.
type Intent struct {
	Kind    IntentKind
	Target  CancelTarget
	Keyword string
}

// Recognized is false for the Help produced when no vocabulary matched.
func (i Intent) Recognized() bool {
	return i.Keyword != ""
}

func CreateIntent(keyword string) Intent {
	return Intent{Kind: IntentCreate, Keyword: keyword}
}

func ListIntent(keyword string) Intent {
	return Intent{Kind: IntentListEvents, Keyword: keyword}
}

func HelpIntent(keyword string) Intent {
	return Intent{Kind: IntentHelp, Keyword: keyword}
}

func CancelByIndex(keyword string, index int) Intent {
	return Intent{Kind: IntentCancel, Keyword: keyword, Target: CancelTarget{Index: index}}
}

func CancelByTitle(keyword, title string) Intent {
	return Intent{Kind: IntentCancel, Keyword: keyword, Target: CancelTarget{Title: title}}
}
