package graph

// DefaultGuides is the reference material loaded by the seed command
func DefaultGuides() []Guide {
	return []Guide{
		{ID: "idea-birthday", Title: "Birthday party", Category: "birthday", Tags: []string{"생일파티", "cake", "games"},
			Content: "Cake, candles, the birthday song, a gift exchange and games. Typical budget 100,000-500,000 KRW."},
		{ID: "idea-anniversary", Title: "Anniversary party", Category: "anniversary", Tags: []string{"결혼기념일", "romantic", "flowers"},
			Content: "Romantic mood, flower arrangements, keepsakes, a photo session and a special menu. Typical budget 200,000-1,000,000 KRW."},
		{ID: "idea-corporate", Title: "Corporate party", Category: "corporate", Tags: []string{"회사파티", "team", "networking"},
			Content: "Team-building activities, networking, a short presentation, buffet dining and an awards segment. Typical budget 30,000-100,000 KRW per person."},
		{ID: "idea-graduation", Title: "Graduation party", Category: "graduation", Tags: []string{"졸업파티", "photo", "keepsakes"},
			Content: "Custom keepsakes, a photo booth, congratulation messages and a contact exchange for classmates. Typical budget 50,000-300,000 KRW."},
		{ID: "venue-cafe", Title: "Indoor cafe or restaurant", Category: "venue", Tags: []string{"small", "indoor"},
			Content: "Cozy, food service available, suits small gatherings of 10-50 and is weather-proof. Around 100,000-300,000 KRW per hour."},
		{ID: "venue-hotel", Title: "Hotel banquet hall", Category: "venue", Tags: []string{"large", "formal"},
			Content: "Formal, full service, handles 50-200 guests with easy parking. Around 1,000,000-5,000,000 KRW."},
		{ID: "venue-park", Title: "Outdoor park", Category: "venue", Tags: []string{"outdoor", "cheap"},
			Content: "Relaxed, plenty of space and cheap, from free to 100,000 KRW, but depends on the weather."},
		{ID: "catering-buffet", Title: "Buffet catering", Category: "catering", Tags: []string{"buffet", "large"},
			Content: "Wide choice, self-service, comparatively cheap and good for large events. 15,000-40,000 KRW per person."},
		{ID: "catering-course", Title: "Course meal", Category: "catering", Tags: []string{"formal", "course"},
			Content: "Plated service with a fixed menu and an upscale feel. 50,000-150,000 KRW per person."},
		{ID: "catering-snacks", Title: "Snacks and desserts", Category: "catering", Tags: []string{"dessert", "casual"},
			Content: "Cake, cookies and drinks for casual parties. 5,000-20,000 KRW per person."},
	}
}
