package categorization

// Category bundles the display attributes and the keyword list that drives
// automatic assignment. Keyword lists are tuned for Indian merchants and
// UPI payees.
type Category struct {
	Name     string   `json:"name"`
	Emoji    string   `json:"emoji"`
	Color    string   `json:"color"`
	Keywords []string `json:"keywords"`
}

// categories is the full taxonomy in tie-break order: when two categories
// score equally the one declared first wins. Other is the sink for
// everything with no keyword hit and must stay last.
var categories = []Category{
	{
		Name:  "Food",
		Emoji: "🍽️",
		Color: "#FF6B6B",
		Keywords: []string{
			"swiggy", "zomato", "dominos", "mcd", "mcdonalds", "burger king",
			"kfc", "pizza hut", "subway", "restaurant", "cafe", "coffee",
			"bakery", "dunkin", "starbucks", "biryani", "dhaba", "dhabha",
			"food", "delivery", "uber eats", "faasos", "chai", "samosa",
			"pizza", "noodles", "hotel", "mess", "canteen", "grocery",
			"supermarket", "bms", "inox",
		},
	},
	{
		Name:  "Transport",
		Emoji: "🚗",
		Color: "#4ECDC4",
		Keywords: []string{
			"uber", "ola", "rapido", "metro", "bus", "railway", "train",
			"ticket", "petrol", "diesel", "fuel", "gas", "parking", "toll",
			"flight", "airline", "taxi", "cab", "autorickshaw", "auto",
			"bike", "bike sharing", "car", "automobile", "transport",
			"travel", "meru", "google", "maps", "navigation",
		},
	},
	{
		Name:  "Shopping",
		Emoji: "🛍️",
		Color: "#FFE66D",
		Keywords: []string{
			"amazon", "flipkart", "myntra", "mall", "store", "shop",
			"retail", "clothing", "dress", "shoes", "apparels", "fashion",
			"cloth", "h&m", "forever 21", "zara", "mango", "uniqlo", "gap",
			"watch", "jewellery", "jewelry", "ring", "necklace", "earring",
			"handbag", "purse", "bag", "sunglasses", "glasses", "spectacles",
			"nike", "adidas", "puma", "reebok", "sports", "equipment",
			"yousta", "attibele", "electronic", "electronics", "city",
		},
	},
	{
		Name:  "Entertainment",
		Emoji: "🎬",
		Color: "#DDA0DD",
		Keywords: []string{
			"netflix", "amazon prime", "prime video", "hotstar",
			"disney plus", "sony liv", "zee", "youtube", "gaming", "game",
			"playstation", "xbox", "steam", "movie", "cinema", "theatre",
			"theater", "ticket", "concert", "music", "spotify", "gaana",
			"wynk", "entertainment", "series", "webseries", "digital",
			"subscription",
		},
	},
	{
		Name:  "Bills",
		Emoji: "💳",
		Color: "#95E1D3",
		Keywords: []string{
			"electricity", "water", "internet", "broadband", "wifi",
			"mobile", "phone", "prepaid", "postpaid", "datacard", "airtel",
			"jio", "vi", "vodafone", "idea", "bsnl", "electricity board",
			"water board", "utility", "power", "deposit", "payment", "bill",
			"rent", "property", "housing", "loan", "emi", "subscription",
		},
	},
	{
		Name:  "Health",
		Emoji: "⚕️",
		Color: "#A8E6CF",
		Keywords: []string{
			"pharmacy", "hospital", "doctor", "clinic", "medical",
			"medicine", "health", "dental", "dentist", "lab", "pathology",
			"test", "diagnostic", "vaccine", "vaccination", "ayurveda",
			"yoga", "gym", "fitness", "sports", "wellness", "spa",
			"massage", "healthcare", "insurance", "mediclaim", "nursing",
		},
	},
	{
		Name:     "Other",
		Emoji:    "?",
		Color:    "#999999",
		Keywords: []string{},
	},
}

// AllCategories returns the taxonomy in declaration order.
func AllCategories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryNames returns just the names, in declaration order.
func CategoryNames() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// IsValidCategory reports whether name is part of the taxonomy. Matching is
// exact, including case.
func IsValidCategory(name string) bool {
	for _, c := range categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// CategoryEmoji returns the emoji for a category name, or the Other emoji
// when the name is unknown.
func CategoryEmoji(name string) string {
	for _, c := range categories {
		if c.Name == name {
			return c.Emoji
		}
	}
	return categories[len(categories)-1].Emoji
}

// CategoryColor returns the display color for a category name.
func CategoryColor(name string) string {
	for _, c := range categories {
		if c.Name == name {
			return c.Color
		}
	}
	return categories[len(categories)-1].Color
}
