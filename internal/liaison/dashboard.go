package liaison

// MetricData is one headline figure shown in the dashboard chrome.
type MetricData struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Trend   string `json:"trend"`
	TrendUp bool   `json:"trendUp"`
}

// TopicVolume is one bar of the topic chart.
type TopicVolume struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Escalation is one row of the high-priority table.
type Escalation struct {
	Category  string    `json:"category"`
	Role      Role      `json:"userRole"`
	Sentiment Sentiment `json:"sentiment"`
	Language  Language  `json:"lang"`
}

// Dashboard is the governance view over a session feed. Only the escalation
// count, sentiment score and escalation table depend on the feed; the rest is canned.
type Dashboard struct {
	TotalComments   int           `json:"totalComments"`
	EscalatedIssues int           `json:"escalatedIssues"`
	SentimentScore  int           `json:"sentimentScore"`
	ManHoursSaved   string        `json:"manHoursSaved"`
	HighPriority    []Escalation  `json:"highPriority"`
	Topics          []TopicVolume `json:"topics"`
	LiveMetrics     []MetricData  `json:"liveMetrics"`
	PilotRegion     string        `json:"pilotRegion"`
}

const highPriorityRows = 5

// BuildDashboard computes the dashboard for comments (newest first).
func BuildDashboard(comments []Comment) Dashboard {
	flagged := 0
	for _, c := range comments {
		if c.Flagged {
			flagged++
		}
	}

	rows := comments
	if len(rows) > highPriorityRows {
		rows = rows[:highPriorityRows]
	}
	escalations := make([]Escalation, len(rows))
	for i, c := range rows {
		escalations[i] = Escalation{Category: c.Category, Role: c.Role, Sentiment: c.Sentiment, Language: c.Language}
	}

	return Dashboard{
		TotalComments:   len(comments),
		EscalatedIssues: flagged,
		SentimentScore:  SentimentScore(len(comments)),
		ManHoursSaved:   "124 hrs",
		HighPriority:    escalations,
		Topics: []TopicVolume{
			{Name: "Water", Value: 45, Color: "#3b82f6"},
			{Name: "Education", Value: 30, Color: "#10b981"},
			{Name: "Roads", Value: 25, Color: "#f59e0b"},
			{Name: "Health", Value: 15, Color: "#ef4444"},
			{Name: "Transport", Value: 10, Color: "#8b5cf6"},
		},
		LiveMetrics: []MetricData{
			{Label: "Total Traffic", Value: "1,240", Trend: "up", TrendUp: true},
			{Label: "Response Rate", Value: "99.8%", Trend: "steady", TrendUp: true},
		},
		PilotRegion: "Hyderabad",
	}
}

// SentimentScore is the mock positive-feedback percentage: floor(n/(n+1)*100).
func SentimentScore(n int) int {
	if n <= 0 {
		return 0
	}
	return n * 100 / (n + 1)
}
