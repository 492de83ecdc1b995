package app

// ordinal returns variants[i], saturating at the first and last variant.
func ordinal[T any](variants []T, i int) T {
	if i < 0 {
		i = 0
	}
	if i >= len(variants) {
		i = len(variants) - 1
	}
	return variants[i]
}

func indexOf[T comparable](variants []T, v T) int {
	for i, candidate := range variants {
		if candidate == v {
			return i
		}
	}
	return 0
}

// RequestTab is the sub-view shown in the request pane.
type RequestTab int

const (
	RequestBody RequestTab = iota
	RequestHeaders
	RequestPathParams
	RequestQueryParams
)

var requestTabs = []RequestTab{RequestBody, RequestHeaders, RequestPathParams, RequestQueryParams}

// RequestTabs lists the request tabs in display order.
func RequestTabs() []RequestTab { return append([]RequestTab(nil), requestTabs...) }

// RequestTabFromIndex converts an index to a tab, saturating out-of-range values.
func RequestTabFromIndex(i int) RequestTab { return ordinal(requestTabs, i) }

func (t RequestTab) Index() int { return indexOf(requestTabs, t) }

// Next moves one tab right and stays on the last tab.
func (t RequestTab) Next() RequestTab { return RequestTabFromIndex(t.Index() + 1) }

// Prev moves one tab left and stays on the first tab.
func (t RequestTab) Prev() RequestTab {
	idx := t.Index()
	if idx == 0 {
		return t
	}
	return RequestTabFromIndex(idx - 1)
}

func (t RequestTab) String() string {
	switch t {
	case RequestBody:
		return "Body"
	case RequestHeaders:
		return "Headers"
	case RequestPathParams:
		return "Path Params"
	case RequestQueryParams:
		return "Query Params"
	default:
		return "Unknown"
	}
}

// ResponseTab is the sub-view shown in the response pane.
type ResponseTab int

const (
	ResponseBody ResponseTab = iota
	ResponseHeaders
)

var responseTabs = []ResponseTab{ResponseBody, ResponseHeaders}

// ResponseTabs lists the response tabs in display order.
func ResponseTabs() []ResponseTab { return append([]ResponseTab(nil), responseTabs...) }

// ResponseTabFromIndex converts an index to a tab, saturating out-of-range values.
func ResponseTabFromIndex(i int) ResponseTab { return ordinal(responseTabs, i) }

func (t ResponseTab) Index() int { return indexOf(responseTabs, t) }

func (t ResponseTab) Next() ResponseTab { return ResponseTabFromIndex(t.Index() + 1) }

func (t ResponseTab) Prev() ResponseTab {
	idx := t.Index()
	if idx == 0 {
		return t
	}
	return ResponseTabFromIndex(idx - 1)
}

func (t ResponseTab) String() string {
	switch t {
	case ResponseBody:
		return "Body"
	case ResponseHeaders:
		return "Headers"
	default:
		return "Unknown"
	}
}
