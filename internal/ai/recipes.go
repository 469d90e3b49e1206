package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadRecipeJSON = errors.New("AI returned malformed recipe JSON")
	ErrUnknownMode   = errors.New("unknown recipe mode")
)

// Recipe modes: suggest dishes from on-hand ingredients, or build a one-day
// meal plan for a dietary goal.
const (
	ModeIngredients = "ingredients"
	ModeDiet        = "diet"
)

type Recipe struct {
	Title        string   `json:"title"`
	Time         string   `json:"time"`
	Calories     string   `json:"calories"`
	Tags         []string `json:"tags"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// SuggestRecipes generates recipes for the query and parses the model's
// fenced-JSON answer. Malformed JSON is surfaced as an error with no partial
// recovery.
func (c *Client) SuggestRecipes(ctx context.Context, mode, query string) ([]Recipe, error) {
	var prompt string
	switch mode {
	case ModeIngredients:
		prompt = fmt.Sprintf(`Act as an Indian Chef. User has these ingredients: %s.
Suggest 2 detailed, tasty recipes.
Return ONLY valid JSON (no markdown):
[ { "title": "Recipe Name", "time": "30 mins", "calories": "400 kcal", "tags": ["Spicy", "Lunch"], "ingredients": ["Item 1", "Item 2"], "instructions": ["Step 1", "Step 2"] } ]`, query)
	case ModeDiet:
		prompt = fmt.Sprintf(`Act as a Desi Nutritionist. Goal: %s. Create 1-day meal plan (3 meals).
Return ONLY valid JSON (no markdown):
[ { "title": "Meal Name", "time": "15 mins", "calories": "300 kcal", "tags": ["Breakfast"], "ingredients": ["Item 1"], "instructions": ["Step 1"] } ]`, query)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	model, err := c.pickModel(ctx, false)
	if err != nil {
		return nil, err
	}

	text, err := c.generate(ctx, model, []part{{Text: prompt}})
	if err != nil {
		return nil, err
	}

	recipes, err := parseRecipeJSON(text)
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Chat returns a free-form answer to a user message.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	model, err := c.pickModel(ctx, false)
	if err != nil {
		return "", err
	}
	return c.generate(ctx, model, []part{{Text: message}})
}

// parseRecipeJSON strips the ```json fences models add despite being told
// not to, then decodes the array.
func parseRecipeJSON(text string) ([]Recipe, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var recipes []Recipe
	if err := json.Unmarshal([]byte(cleaned), &recipes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecipeJSON, err)
	}
	return recipes, nil
}
