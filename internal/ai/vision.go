package ai

import (
	"context"
	"encoding/base64"
	"strings"
)

// foodCheckPrompt asks for a bare YES/NO so the verdict survives whatever
// phrasing the model wraps around it.
const foodCheckPrompt = "Look at this image. Is this real, edible cooked food or raw ingredients " +
	"suitable for donation? If it is food, return ONLY the word 'YES'. If it is a person, " +
	"object, blur, or inappropriate, return 'NO'."

// VerifyFoodImage classifies a donation photo. Acceptance means the response
// contains the token YES; anything else, including endpoint failures, is a
// rejection. The verdict string is returned for diagnostics either way.
func (c *Client) VerifyFoodImage(ctx context.Context, mimeType string, image []byte) (bool, string, error) {
	model, err := c.pickModel(ctx, true)
	if err != nil {
		return false, "", err
	}

	text, err := c.generate(ctx, model, []part{
		{Text: foodCheckPrompt},
		{InlineData: &inlineData{
			MIMEType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}},
	})
	if err != nil {
		return false, "", err
	}

	verdict := strings.ToUpper(strings.TrimSpace(text))
	return strings.Contains(verdict, "YES"), verdict, nil
}
