package liaison

import "time"

// SeedComments returns the demo conversation every new session starts with,
// newest first, timestamped relative to now.
func SeedComments(now time.Time) []Comment {
	return []Comment{
		{
			ID:        "1",
			Role:      RoleFarmer,
			Text:      "మా గ్రామంలో నీటి సమస్య చాలా ఎక్కువగా ఉంది. దీనికి పరిష్కారం ఏమిటి?",
			Language:  LanguageTelugu,
			Category:  "Water/Irrigation",
			Sentiment: SentimentNegative,
			Reply:     "నమస్కారం రమేష్ గారు. మీ సమస్యను గుర్తించాము. మిషన్ భగీరథ ద్వారా పైప్‌లైన్ పనులు మీ గ్రామంలో వచ్చే నెలలో ప్రారంభమవుతాయి. వివరాల కోసం స్థానిక పంచాయతీని సంప్రదించండి.",
			Flagged:   true,
			Timestamp: now.Add(-1 * time.Hour),
		},
		{
			ID:        "2",
			Role:      RoleStudent,
			Text:      "When will the scholarship results be announced?",
			Language:  LanguageEnglish,
			Category:  "Education",
			Sentiment: SentimentNeutral,
			Reply:     "Hello. The State Scholarship results are scheduled for release on October 15th. Please check the e-Pass website.",
			Timestamp: now.Add(-2 * time.Hour),
		},
		{
			ID:        "3",
			Role:      RoleCitizen,
			Text:      "Great initiative by the government!",
			Language:  LanguageEnglish,
			Category:  "General",
			Sentiment: SentimentPositive,
			Reply:     "Thank you for your support! We are committed to serving you better.",
			Timestamp: now.Add(-3 * time.Hour),
		},
	}
}
