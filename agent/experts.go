package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/mononomics"
	"github.com/etnz/mononomics/docs"
	"github.com/etnz/mononomics/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user keeps a personal budget: a cash balance, income and expense transactions,
			and savings goals. They come to understand where their money goes and how far
			their goals are.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.
			Never invent figures, always get them from the Bookkeeper.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor returns an expert on personal finance grounded with Google Search.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is a personal finance advisor.
		Ask the Advisor for budgeting practices, saving strategies,
		or any general knowledge that is not in the user's ledger.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in personal finance. You give practical advice on budgeting
			and saving for individuals. You leverage Google Search to ground your assertions.
				`}}},
		},
	}
}

// NewBookkeeper returns the expert reading the ledger l. Amounts are
// reported in currency. The bookkeeper cannot modify the ledger.
func NewBookkeeper(l *mononomics.Ledger, currency string) *Expert {
	lib := BookkeeperTools(l, currency)
	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. They read the user's ledger: balance,
		transactions and savings goals, and compute any figure from them.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's ledger.
				You know how to use the Tools to extract relevant information from it.
				You are part of a team of experts, yours is everything about the user's ledger. They might ask
				you questions about it, pardon their approximative language and figure out what they meant.

				Use the available tools to get:
				  - the balance
				  - transactions, filtered by type or time
				  - savings goals and their progress
				  - totals
				  - anything else through a JSONPath query on the ledger document
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// markdown declares a tool returning a markdown report.
func markdown(name, description, response string, params map[string]*genai.Schema, render func(args map[string]any) (string, error)) *Func {
	decl := &genai.FunctionDeclaration{
		Name:        name,
		Description: description,
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: response,
		},
	}
	if len(params) > 0 {
		decl.Parameters = &genai.Schema{Type: genai.TypeObject, Properties: params}
	}
	return &Func{
		Decl: decl,
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			out, err := render(args)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, out)
		},
	}
}

// BookkeeperTools returns the read only tools over l.
func BookkeeperTools(l *mononomics.Ledger, currency string) []*Func {
	return []*Func{
		markdown("Balance",
			"Balance returns the current balance of the ledger.",
			"A markdown sentence with the balance.",
			nil,
			func(map[string]any) (string, error) {
				return renderer.RenderBalance(renderer.NewBalance(l, currency)), nil
			}),

		markdown("Transactions",
			"Transactions lists the income and expense transactions, optionally filtered by type and time range.",
			"A markdown table of the transactions, with their position, type, amount, description and timestamp, followed by totals.",
			map[string]*genai.Schema{
				"type":  {Type: genai.TypeString, Enum: []string{"income", "expense"}, Description: "Only list transactions of this type."},
				"since": {Type: genai.TypeString, Description: "Inclusive lower bound, as YYYY-MM-DD or YYYY-MM-DD HH:MM:SS."},
				"until": {Type: genai.TypeString, Description: "Exclusive upper bound, as YYYY-MM-DD or YYYY-MM-DD HH:MM:SS."},
			},
			func(args map[string]any) (string, error) {
				filters, err := transactionFilters(args)
				if err != nil {
					return "", err
				}
				return renderer.RenderTransactions(renderer.NewTransactions("Transactions", currency, l.Transactions(filters...))), nil
			}),

		markdown("Goals",
			"Goals lists the savings goals with their progress.",
			"A markdown table of the savings goals with target, progress, percentage and remaining amount.",
			nil,
			func(map[string]any) (string, error) {
				return renderer.RenderGoals(renderer.NewGoals(l, currency)), nil
			}),

		markdown("Summary",
			"Summary returns the totals of the ledger: balance, income, expenses, savings.",
			"A markdown table of totals.",
			nil,
			func(map[string]any) (string, error) {
				return renderer.RenderSummary(renderer.NewSummary(l.Summary(), currency)), nil
			}),

		markdown("Query",
			"Query evaluates a JSONPath expression on the ledger document.\n\n"+must(docs.GetTopic("query")),
			"The JSON encoded result of the query.",
			map[string]*genai.Schema{
				"path": {Type: genai.TypeString, Description: "The JSONPath expression, e.g. $.transactions[?(@.amount > 100)]"},
			},
			func(args map[string]any) (string, error) {
				path, err := stringArg(args, "path")
				if err != nil {
					return "", err
				}
				v, err := mononomics.Query(l, path)
				if err != nil {
					return "", err
				}
				out, err := json.Marshal(v)
				if err != nil {
					return "", fmt.Errorf("could not encode query result: %w", err)
				}
				return string(out), nil
			}),
	}
}

func transactionFilters(args map[string]any) ([]func(mononomics.Transaction) bool, error) {
	var filters []func(mononomics.Transaction) bool
	kind, err := stringArg(args, "type")
	if err != nil {
		return nil, err
	}
	if kind != "" {
		k, err := mononomics.ParseKind(kind)
		if err != nil {
			return nil, err
		}
		filters = append(filters, mononomics.ByKind(k))
	}

	since, err := stringArg(args, "since")
	if err != nil {
		return nil, err
	}
	until, err := stringArg(args, "until")
	if err != nil {
		return nil, err
	}
	from, err := mononomics.ParseTime(since)
	if err != nil {
		return nil, err
	}
	to, err := mononomics.ParseTime(until)
	if err != nil {
		return nil, err
	}
	return append(filters, mononomics.Between(from, to)), nil
}
