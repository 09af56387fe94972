package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeanpaul/studentdb/internal/student"
	"github.com/jeanpaul/studentdb/internal/tui"
)

const gradeHint = "Enter Grade (e.g., A+, A, B-): "

// AddCmd prompts for a new student and stores it.
type AddCmd struct{}

func (c *AddCmd) Key() string   { return "1" }
func (c *AddCmd) Title() string { return "Add Student Record" }
func (c *AddCmd) Execute(ctx context.Context, env *Env) error {
	var answers [4]string
	prompts := []string{"Enter First Name: ", "Enter Last Name: ", "Enter Course: ", gradeHint}
	for i, p := range prompts {
		s, err := env.In.Ask(ctx, p)
		if err != nil {
			return err
		}
		answers[i] = s
	}

	rec, err := env.Store.Add(answers[0], answers[1], answers[2], answers[3])
	if err != nil {
		// a persistence failure still added the record
		if rec.ID == 0 {
			return err
		}
		fmt.Fprintln(env.Out, tui.WarningStyle.Render("Student added but not saved."))
		fmt.Fprint(env.Out, tui.RecordCard(rec))
		return err
	}
	env.Log.Info().Int64("id", rec.ID).Msg("student added")
	fmt.Fprintln(env.Out, tui.SuccessStyle.Render("Student Added Successfully!"))
	fmt.Fprint(env.Out, tui.RecordCard(rec))
	return nil
}

// GetCmd shows one student.
type GetCmd struct{}

func (c *GetCmd) Key() string   { return "2" }
func (c *GetCmd) Title() string { return "Retrieve Student Details" }
func (c *GetCmd) Execute(ctx context.Context, env *Env) error {
	id, err := env.In.AskID(ctx, "Enter Student ID: ")
	if err != nil {
		return err
	}
	rec, err := env.Store.Get(id)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Out, tui.LabelStyle.Render("Student Details:"))
	fmt.Fprint(env.Out, tui.RecordCard(rec))
	return nil
}

// UpdateGradeCmd changes a student's grade.
type UpdateGradeCmd struct{}

func (c *UpdateGradeCmd) Key() string   { return "3" }
func (c *UpdateGradeCmd) Title() string { return "Update Student Grade" }
func (c *UpdateGradeCmd) Execute(ctx context.Context, env *Env) error {
	id, err := env.In.AskID(ctx, "Enter Student ID: ")
	if err != nil {
		return err
	}
	grade, err := env.In.Ask(ctx, "Enter New "+strings.TrimPrefix(gradeHint, "Enter "))
	if err != nil {
		return err
	}
	if err := env.Store.UpdateGrade(id, grade); err != nil {
		return err
	}
	env.Log.Info().Int64("id", id).Str("grade", student.NormalizeGrade(grade)).Msg("grade updated")
	fmt.Fprintln(env.Out, tui.SuccessStyle.Render("Grade Updated Successfully!"))
	return nil
}

// DeleteCmd removes a student.
type DeleteCmd struct{}

func (c *DeleteCmd) Key() string   { return "4" }
func (c *DeleteCmd) Title() string { return "Delete Student Record" }
func (c *DeleteCmd) Execute(ctx context.Context, env *Env) error {
	id, err := env.In.AskID(ctx, "Enter Student ID: ")
	if err != nil {
		return err
	}
	if err := env.Store.Delete(id); err != nil {
		return err
	}
	env.Log.Info().Int64("id", id).Msg("student deleted")
	fmt.Fprintln(env.Out, tui.SuccessStyle.Render(fmt.Sprintf("Student with ID %d deleted successfully.", id)))
	return nil
}

// ListCmd prints every student in id order.
type ListCmd struct{}

func (c *ListCmd) Key() string   { return "5" }
func (c *ListCmd) Title() string { return "Display All Students" }
func (c *ListCmd) Execute(ctx context.Context, env *Env) error {
	records := env.Store.List()
	fmt.Fprintln(env.Out, tui.LabelStyle.Render("All Students:"))
	if len(records) == 0 {
		fmt.Fprintln(env.Out, tui.HelpStyle.Render("(no students)"))
		return nil
	}
	for _, r := range records {
		fmt.Fprint(env.Out, tui.RecordCard(r))
		fmt.Fprintln(env.Out)
	}
	return nil
}

// ExitCmd saves the final state and ends the loop.
type ExitCmd struct{}

func (c *ExitCmd) Key() string   { return "6" }
func (c *ExitCmd) Title() string { return "Exit" }
func (c *ExitCmd) Execute(ctx context.Context, env *Env) error {
	fmt.Fprintln(env.Out, "Exiting...")
	if err := env.Store.Flush(); err != nil {
		return err
	}
	return ErrExitRequested
}
