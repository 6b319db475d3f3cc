package domain

import "strings"

// MaxIngredients is the number of ingredient/measure slots a drink record carries
const MaxIngredients = 15

// Cocktail is a single drink record as returned by TheCocktailDB.
// Nullable fields are pointers; nil is serialized as JSON null.
type Cocktail struct {
	ID        string  `json:"idDrink"`
	Name      string  `json:"strDrink"`
	Thumb     string  `json:"strDrinkThumb"`
	Alternate *string `json:"strDrinkAlternate"`
	Tags      *string `json:"strTags"`
	Video     *string `json:"strVideo"`
	Category  *string `json:"strCategory"`
	IBA       *string `json:"strIBA"`
	Alcoholic *string `json:"strAlcoholic"`
	Glass     *string `json:"strGlass"`

	Instructions       *string `json:"strInstructions"`
	InstructionsES     *string `json:"strInstructionsES"`
	InstructionsDE     *string `json:"strInstructionsDE"`
	InstructionsFR     *string `json:"strInstructionsFR"`
	InstructionsIT     *string `json:"strInstructionsIT"`
	InstructionsZHHans *string `json:"strInstructionsZH-HANS"`
	InstructionsZHHant *string `json:"strInstructionsZH-HANT"`

	Ingredient1  *string `json:"strIngredient1"`
	Ingredient2  *string `json:"strIngredient2"`
	Ingredient3  *string `json:"strIngredient3"`
	Ingredient4  *string `json:"strIngredient4"`
	Ingredient5  *string `json:"strIngredient5"`
	Ingredient6  *string `json:"strIngredient6"`
	Ingredient7  *string `json:"strIngredient7"`
	Ingredient8  *string `json:"strIngredient8"`
	Ingredient9  *string `json:"strIngredient9"`
	Ingredient10 *string `json:"strIngredient10"`
	Ingredient11 *string `json:"strIngredient11"`
	Ingredient12 *string `json:"strIngredient12"`
	Ingredient13 *string `json:"strIngredient13"`
	Ingredient14 *string `json:"strIngredient14"`
	Ingredient15 *string `json:"strIngredient15"`

	Measure1  *string `json:"strMeasure1"`
	Measure2  *string `json:"strMeasure2"`
	Measure3  *string `json:"strMeasure3"`
	Measure4  *string `json:"strMeasure4"`
	Measure5  *string `json:"strMeasure5"`
	Measure6  *string `json:"strMeasure6"`
	Measure7  *string `json:"strMeasure7"`
	Measure8  *string `json:"strMeasure8"`
	Measure9  *string `json:"strMeasure9"`
	Measure10 *string `json:"strMeasure10"`
	Measure11 *string `json:"strMeasure11"`
	Measure12 *string `json:"strMeasure12"`
	Measure13 *string `json:"strMeasure13"`
	Measure14 *string `json:"strMeasure14"`
	Measure15 *string `json:"strMeasure15"`

	ImageSource              *string `json:"strImageSource"`
	ImageAttribution         *string `json:"strImageAttribution"`
	CreativeCommonsConfirmed *string `json:"strCreativeCommonsConfirmed"`
	DateModified             *string `json:"dateModified"`
}

// Ingredient is one filled ingredient slot of a cocktail
type Ingredient struct {
	Name    string
	Measure string // empty when the API has no measure for the slot
}

// Ingredients returns the filled ingredient slots in slot order.
// Slots with a nil or blank ingredient are skipped.
func (c Cocktail) Ingredients() []Ingredient {
	names := [MaxIngredients]*string{
		c.Ingredient1, c.Ingredient2, c.Ingredient3, c.Ingredient4, c.Ingredient5,
		c.Ingredient6, c.Ingredient7, c.Ingredient8, c.Ingredient9, c.Ingredient10,
		c.Ingredient11, c.Ingredient12, c.Ingredient13, c.Ingredient14, c.Ingredient15,
	}
	measures := [MaxIngredients]*string{
		c.Measure1, c.Measure2, c.Measure3, c.Measure4, c.Measure5,
		c.Measure6, c.Measure7, c.Measure8, c.Measure9, c.Measure10,
		c.Measure11, c.Measure12, c.Measure13, c.Measure14, c.Measure15,
	}

	var out []Ingredient
	for i, name := range names {
		n := strings.TrimSpace(Deref(name))
		if n == "" {
			continue
		}
		out = append(out, Ingredient{
			Name:    n,
			Measure: strings.TrimSpace(Deref(measures[i])),
		})
	}
	return out
}

// TagList splits the comma separated tags field
func (c Cocktail) TagList() []string {
	raw := Deref(c.Tags)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Clone returns a copy of c that shares no string pointers with it
func (c Cocktail) Clone() Cocktail {
	out := c
	for _, field := range out.optionalFields() {
		if *field != nil {
			v := **field
			*field = &v
		}
	}
	return out
}

// optionalFields lists every nullable field of c
func (c *Cocktail) optionalFields() []**string {
	return []**string{
		&c.Alternate, &c.Tags, &c.Video, &c.Category, &c.IBA, &c.Alcoholic, &c.Glass,
		&c.Instructions, &c.InstructionsES, &c.InstructionsDE, &c.InstructionsFR,
		&c.InstructionsIT, &c.InstructionsZHHans, &c.InstructionsZHHant,
		&c.Ingredient1, &c.Ingredient2, &c.Ingredient3, &c.Ingredient4, &c.Ingredient5,
		&c.Ingredient6, &c.Ingredient7, &c.Ingredient8, &c.Ingredient9, &c.Ingredient10,
		&c.Ingredient11, &c.Ingredient12, &c.Ingredient13, &c.Ingredient14, &c.Ingredient15,
		&c.Measure1, &c.Measure2, &c.Measure3, &c.Measure4, &c.Measure5,
		&c.Measure6, &c.Measure7, &c.Measure8, &c.Measure9, &c.Measure10,
		&c.Measure11, &c.Measure12, &c.Measure13, &c.Measure14, &c.Measure15,
		&c.ImageSource, &c.ImageAttribution, &c.CreativeCommonsConfirmed, &c.DateModified,
	}
}

// CloneAll deep-copies a list of cocktails
func CloneAll(list []Cocktail) []Cocktail {
	out := make([]Cocktail, len(list))
	for i, c := range list {
		out[i] = c.Clone()
	}
	return out
}

// Deref returns the pointed-to string, or "" for nil
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
