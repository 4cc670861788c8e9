package espn

// Trimmed upstream shapes. The network API nests everything under team →
// athletes → statistics → splits → categories; only the fields the mapper
// reads are declared.

type teamResponse struct {
	Team   teamPayload   `json:"team"`
	Season seasonPayload `json:"season"`
}

type seasonPayload struct {
	Year int `json:"year"`
}

type teamPayload struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Athletes    []athlete `json:"athletes"`
}

type athlete struct {
	ID            string       `json:"id"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	FullName      string       `json:"fullName"`
	DisplayName   string       `json:"displayName"`
	Jersey        string       `json:"jersey"`
	Weight        float64      `json:"weight"`
	DisplayHeight string       `json:"displayHeight"`
	Position      position     `json:"position"`
	Class         classPayload `json:"experience"`
	Headshot      headshot     `json:"headshot"`
	Statistics    athleteStats `json:"statistics"`
}

type position struct {
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
}

type classPayload struct {
	DisplayValue string `json:"displayValue"`
}

type headshot struct {
	Href string `json:"href"`
}

type athleteStats struct {
	Splits splits `json:"splits"`
}

type splits struct {
	Categories []category `json:"categories"`
}

type category struct {
	Name  string     `json:"name"`
	Stats []statItem `json:"stats"`
}

type statItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
