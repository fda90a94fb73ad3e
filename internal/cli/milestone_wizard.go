package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/smartject/smartject/internal/cli/formatter"
	"github.com/smartject/smartject/internal/editor"
)

// runMilestoneWizard drives the interactive schedule editor. Each pass
// reloads the session from storage so the displayed schedule always matches
// what has been committed.
func runMilestoneWizard(ctx context.Context, app *App, proposalID string) error {
	for {
		session, err := app.Milestones.EditorSession(ctx, proposalID)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(formatter.FormatSchedule(session.Ledger(), app.Symbol))

		options := []huh.Option[string]{
			huh.NewOption("Add milestone", "add"),
		}
		if session.Ledger().Len() > 0 {
			options = append(options,
				huh.NewOption("Edit milestone", "edit"),
				huh.NewOption("Remove milestone", "remove"),
			)
		}
		options = append(options, huh.NewOption("Done", "done"))

		var action string
		if err := wizardSelect("Schedule", options, &action).Run(); err != nil {
			return err
		}

		switch action {
		case "add":
			if err := wizardAddMilestone(ctx, app, proposalID, session); err != nil {
				return err
			}
		case "edit":
			if err := wizardEditMilestone(ctx, app, proposalID, session); err != nil {
				return err
			}
		case "remove":
			if err := wizardRemoveMilestone(ctx, app, proposalID, session); err != nil {
				return err
			}
		case "done":
			return nil
		}
	}
}

func wizardAddMilestone(ctx context.Context, app *App, proposalID string, session *editor.Session) error {
	if err := runMilestoneForm(session); err != nil {
		return err
	}
	m, err := session.Commit()
	if err != nil {
		fmt.Println(formatter.StyleRed.Render(err.Error()))
		session.Cancel()
		return nil
	}
	if err := app.Milestones.Add(ctx, proposalID, &m); err != nil {
		return err
	}
	fmt.Printf("Added milestone %s (%d%%)\n", m.Name, m.Percentage)
	return nil
}

func wizardEditMilestone(ctx context.Context, app *App, proposalID string, session *editor.Session) error {
	id, ok, err := wizardPickMilestone(session, "Edit which milestone?")
	if err != nil || !ok {
		return err
	}
	if err := session.BeginEdit(id); err != nil {
		return err
	}
	if err := runMilestoneForm(session); err != nil {
		return err
	}
	m, err := session.Commit()
	if err != nil {
		fmt.Println(formatter.StyleRed.Render(err.Error()))
		session.Cancel()
		return nil
	}
	m.ProposalID = proposalID
	if err := app.Milestones.Update(ctx, &m); err != nil {
		return err
	}
	fmt.Printf("Updated milestone %s (%d%%)\n", m.Name, m.Percentage)
	return nil
}

func wizardRemoveMilestone(ctx context.Context, app *App, proposalID string, session *editor.Session) error {
	id, ok, err := wizardPickMilestone(session, "Remove which milestone?")
	if err != nil || !ok {
		return err
	}
	var confirmed bool
	if err := wizardConfirm("Remove this milestone?", &confirmed).Run(); err != nil {
		return err
	}
	if !confirmed {
		return nil
	}
	return app.Milestones.Remove(ctx, id)
}

func wizardPickMilestone(session *editor.Session, title string) (string, bool, error) {
	items := session.Ledger().Milestones()
	if len(items) == 0 {
		return "", false, nil
	}
	options := make([]huh.Option[string], 0, len(items))
	for i, m := range items {
		options = append(options, huh.NewOption(
			fmt.Sprintf("%d. %s (%d%%)", i+1, m.Name, m.Percentage), m.ID))
	}
	var id string
	if err := wizardSelect(title, options, &id).Run(); err != nil {
		return "", false, err
	}
	return id, true, nil
}

// runMilestoneForm collects milestone fields one at a time, in the order
// the session expects: the percentage is entered before the due date and
// amount so their suggested values can be shown as placeholders. Leaving
// either blank keeps the suggestion.
func runMilestoneForm(session *editor.Session) error {
	draft := session.Draft()

	name := draft.Name
	if err := wizardInputText("Milestone Name", "e.g. Design phase", true, &name).Run(); err != nil {
		return err
	}
	session.SetName(name)

	description := draft.Description
	if err := wizardInputText("Description (optional)", "", false, &description).Run(); err != nil {
		return err
	}
	session.SetDescription(description)

	pctStr := ""
	if draft.Percentage > 0 {
		pctStr = strconv.Itoa(draft.Percentage)
	}
	remaining := session.Ledger().Remaining()
	if session.Editing() {
		remaining += draft.Percentage
	}
	pctForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Share of Budget (%)").
				Description(fmt.Sprintf("%d%% still unassigned", remaining)).
				Placeholder(strconv.Itoa(remaining)).
				Value(&pctStr).
				Validate(validatePercentage),
		),
	).WithTheme(smartjectHuhTheme()).WithShowHelp(false)
	if err := pctForm.Run(); err != nil {
		return err
	}
	pct, _ := strconv.Atoi(pctStr)
	session.SetPercentage(pct)

	// Re-read the draft: SetPercentage may have filled in suggestions.
	draft = session.Draft()

	due := ""
	duePlaceholder := "YYYY-MM-DD"
	if !draft.DueDate.IsZero() {
		duePlaceholder = draft.DueDate.Format("2006-01-02")
	}
	dueForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Due Date (blank keeps " + duePlaceholder + ")").
				Placeholder(duePlaceholder).
				Value(&due).
				Validate(validateOptionalDate),
		),
	).WithTheme(smartjectHuhTheme()).WithShowHelp(false)
	if err := dueForm.Run(); err != nil {
		return err
	}
	if due != "" {
		dueDate, err := time.Parse("2006-01-02", due)
		if err != nil {
			return err
		}
		session.SetDueDate(dueDate)
	}

	amount := ""
	amountPlaceholder := draft.Amount
	if amountPlaceholder == "" {
		amountPlaceholder = "e.g. 2500"
	}
	if err := wizardInputText("Amount (blank keeps "+amountPlaceholder+")", amountPlaceholder, false, &amount).Run(); err != nil {
		return err
	}
	if amount != "" {
		session.SetAmount(amount)
	}

	for {
		d := ""
		if err := wizardInputText("Add Deliverable (blank to finish)", "", false, &d).Run(); err != nil {
			return err
		}
		if !session.AddDeliverable(d) {
			break
		}
	}

	return nil
}
