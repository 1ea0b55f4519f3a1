package catalog

// defaultEntries is the compiled-in travel intent catalog, used when no
// catalog.yaml is present or an entry set fails validation on reload.
func defaultEntries() []Entry {
	return []Entry{
		{
			Label:    "book_flight",
			Keywords: []string{"fly", "flight", "plane", "airline", "ticket", "airport", "depart"},
			Steps: []StepTemplate{
				{Capability: "flight_booking"},
				{Capability: "calendar_availability"},
			},
		},
		{
			Label:    "book_hotel",
			Keywords: []string{"hotel", "stay", "room", "accommodation", "hostel", "resort", "night"},
			Steps: []StepTemplate{
				{Capability: "hotel_booking"},
			},
		},
		{
			Label:    "plan_trip",
			Keywords: []string{"trip", "travel", "vacation", "holiday", "itinerary", "plan", "visit", "budget", "destination"},
			Steps: []StepTemplate{
				{Capability: "recommendation"},
				{Capability: "weather_lookup"},
				{Capability: "carbon_score", DependsOn: []string{"recommendation"}},
			},
		},
		{
			Label:    "get_recommendations",
			Keywords: []string{"recommend", "suggest", "idea", "where", "best", "top"},
			Steps: []StepTemplate{
				{Capability: "recommendation"},
			},
		},
		{
			Label:    "check_weather",
			Keywords: []string{"weather", "rain", "forecast", "temperature", "sunny", "snow", "climate"},
			Steps: []StepTemplate{
				{Capability: "weather_lookup"},
			},
		},
		{
			Label:    "emotional_support",
			Keywords: []string{"stressed", "anxious", "worried", "overwhelmed", "nervous", "tired", "sad"},
			Steps: []StepTemplate{
				{Capability: "emotional_adaptation"},
			},
		},
		{
			Label:    "find_companions",
			Keywords: []string{"companion", "group", "together", "join", "meet", "solo", "friends"},
			Steps: []StepTemplate{
				{Capability: "social_matching"},
			},
		},
		{
			Label:    "carbon_footprint",
			Keywords: []string{"carbon", "emission", "sustainable", "eco", "green", "footprint"},
			Steps: []StepTemplate{
				{Capability: "carbon_score"},
			},
		},
		{
			Label:    "backup_plan",
			Keywords: []string{"backup", "alternative", "cancel", "fallback", "contingency", "reschedule"},
			Steps: []StepTemplate{
				{Capability: "backup_plan"},
			},
		},
	}
}
