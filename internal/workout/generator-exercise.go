package workout

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/vlourenco/treinoapp/internal/errors"
)

// exerciseGenerator fills in catalogue entries using the OpenAI API.
type exerciseGenerator struct {
	client       openai.Client
	muscleGroups []string
}

func newExerciseGenerator(openaiAPIKey string, muscleGroups []string) *exerciseGenerator {
	client := openai.NewClient(option.WithAPIKey(openaiAPIKey))
	return &exerciseGenerator{
		client:       client,
		muscleGroups: muscleGroups,
	}
}

// Generate produces a described exercise for the given name.
func (eg *exerciseGenerator) Generate(ctx context.Context, name string) (Exercise, error) {
	if name == "" {
		return Exercise{}, errors.New("exercise name cannot be empty")
	}

	prompt := fmt.Sprintf(`Generate a detailed exercise description for "%s" in Brazilian Portuguese.
Include whether the exercise is unilateral, the primary and secondary muscle
groups it targets, and a markdown description following this exact structure:

## Instruções
[Provide 3-5 numbered steps explaining how to perform the exercise correctly]

## Erros comuns
[List 3-4 common form errors as bullet points]

Important guidelines:
- Instructions should be clear, concise, and focus on proper form
- Use simple, direct language that beginners can understand
- Highlight safety considerations where relevant

The description should be comprehensive yet concise, totaling around 150-200 words.`, name)

	chat, err := eg.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "exercise",
					Description: openai.String("Detailed information about a fitness exercise"),
					Schema:      exerciseJSONSchema{muscleGroups: eg.muscleGroups},
					Strict:      openai.Bool(true),
				},
			},
		},
		Model: openai.ChatModelGPT4o,
	})
	if err != nil {
		return Exercise{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return Exercise{}, errors.New("chat completion returned no choices")
	}

	var exercise Exercise
	if err = json.Unmarshal([]byte(chat.Choices[0].Message.Content), &exercise); err != nil {
		return Exercise{}, fmt.Errorf("parse exercise response: %w", err)
	}
	exercise.ID = uuid.New()

	if exercise.Name == "" || exercise.Description == nil {
		return Exercise{}, errors.New("generated exercise is missing required fields")
	}
	if len(exercise.PrimaryMuscleGroups) == 0 {
		return Exercise{}, errors.New("generated exercise has no primary muscle groups")
	}
	groups := slices.Concat(exercise.PrimaryMuscleGroups, exercise.SecondaryMuscleGroups)
	if err = eg.validateMuscleGroups(groups); err != nil {
		return Exercise{}, fmt.Errorf("validate muscle groups: %w", err)
	}

	return exercise, nil
}

// validateMuscleGroups checks that all muscle groups are in the allowed list.
func (eg *exerciseGenerator) validateMuscleGroups(groups []string) error {
	for _, group := range groups {
		if !slices.Contains(eg.muscleGroups, group) {
			return fmt.Errorf("invalid muscle group %q", group)
		}
	}
	return nil
}

// exerciseJSONSchema renders the structured-output schema with the allowed
// muscle groups baked into the enums.
type exerciseJSONSchema struct {
	muscleGroups []string
}

func (ejs exerciseJSONSchema) MarshalJSON() ([]byte, error) {
	muscleGroupsJSON, err := json.Marshal(ejs.muscleGroups)
	if err != nil {
		return nil, fmt.Errorf("marshal muscle groups: %w", err)
	}

	return fmt.Appendf(nil, `{
		  "type": "object",
		  "required": [
			"name",
			"description",
			"isUnilateral",
			"primaryMuscleGroups",
			"secondaryMuscleGroups"
		  ],
		  "properties": {
			"name": {
			  "type": "string",
			  "description": "Name of the exercise"
			},
			"description": {
			  "type": "string",
			  "description": "Markdown description of the exercise"
			},
			"isUnilateral": {
			  "type": "boolean",
			  "description": "Whether the exercise works one side of the body at a time"
			},
			"primaryMuscleGroups": {
			  "type": "array",
			  "description": "Primary muscle groups targeted by the exercise",
			  "items": {
				"type": "string",
				"enum": %s
			  }
			},
			"secondaryMuscleGroups": {
			  "type": "array",
			  "description": "Secondary muscle groups targeted by the exercise",
			  "items": {
				"type": "string",
				"enum": %s
			  }
			}
		  },
		  "additionalProperties": false
		}`, muscleGroupsJSON, muscleGroupsJSON), nil
}
