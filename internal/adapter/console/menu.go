package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"user-management-service/internal/usecase/user"
	apperrors "user-management-service/pkg/errors"
	"user-management-service/pkg/logger"
)

const (
	choiceCreate = "1"
	choiceGet    = "2"
	choiceList   = "3"
	choiceUpdate = "4"
	choiceDelete = "5"
	choiceExit   = "6"
)

// Menu is the interactive numbered-menu front end over the user service.
type Menu struct {
	uc  user.Usecase
	in  *bufio.Scanner
	out io.Writer
	log *zap.Logger
}

// NewMenu creates a menu reading commands from in and printing to out.
func NewMenu(uc user.Usecase, in io.Reader, out io.Writer, log *zap.Logger) *Menu {
	return &Menu{
		uc:  uc,
		in:  bufio.NewScanner(in),
		out: out,
		log: log,
	}
}

// Run shows the menu until the user exits, input ends or ctx is canceled.
// Command failures are printed and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		choice, ok := m.prompt("Choose an action: ")
		if !ok {
			m.println("\nInput closed, exiting.")
			return m.in.Err()
		}

		cmdCtx := logger.NewRequestContext(ctx, "console", "")

		switch strings.TrimSpace(choice) {
		case choiceCreate:
			m.createUser(cmdCtx)
		case choiceGet:
			m.getUserByID(cmdCtx)
		case choiceList:
			m.getAllUsers(cmdCtx)
		case choiceUpdate:
			m.updateUser(cmdCtx)
		case choiceDelete:
			m.deleteUser(cmdCtx)
		case choiceExit:
			m.println("Exiting.")
			return nil
		default:
			m.println("Invalid choice. Please try again.")
		}
	}
}

func (m *Menu) printMenu() {
	m.println("\nMenu:")
	m.println("1. Create user")
	m.println("2. Get user by ID")
	m.println("3. List all users")
	m.println("4. Update user")
	m.println("5. Delete user")
	m.println("6. Exit")
}

func (m *Menu) createUser(ctx context.Context) {
	name, ok := m.prompt("Enter name: ")
	if !ok {
		return
	}
	email, ok := m.prompt("Enter email: ")
	if !ok {
		return
	}
	ageStr, ok := m.prompt("Enter age: ")
	if !ok {
		return
	}

	age, err := parseAge(ageStr)
	if err != nil {
		m.println("Error: invalid age format. Please enter a number.")
		return
	}

	created, err := m.uc.CreateUser(ctx, user.CreateUserRequest{Name: name, Email: email, Age: age})
	if err != nil {
		m.printError(ctx, "creating user", err)
		return
	}

	m.println("User created: " + created.String())
}

func (m *Menu) getUserByID(ctx context.Context) {
	id, ok := m.promptID("Enter user ID: ")
	if !ok {
		return
	}

	u, err := m.uc.GetUserByID(ctx, id)
	if err != nil {
		m.printError(ctx, "getting user", err)
		return
	}
	if u == nil {
		m.printNotFound(id)
		return
	}

	m.println(u.String())
}

func (m *Menu) getAllUsers(ctx context.Context) {
	users, err := m.uc.GetAllUsers(ctx)
	if err != nil {
		m.printError(ctx, "listing users", err)
		return
	}
	if len(users) == 0 {
		m.println("No users found.")
		return
	}

	for i := range users {
		m.println(users[i].String())
	}
}

func (m *Menu) updateUser(ctx context.Context) {
	id, ok := m.promptID("Enter ID of the user to update: ")
	if !ok {
		return
	}

	existing, err := m.uc.GetUserByID(ctx, id)
	if err != nil {
		m.printError(ctx, "updating user", err)
		return
	}
	if existing == nil {
		m.printNotFound(id)
		return
	}

	name, ok := m.promptDefault("Enter new name", existing.Name)
	if !ok {
		return
	}
	email, ok := m.promptDefault("Enter new email", existing.Email)
	if !ok {
		return
	}
	ageStr, ok := m.promptDefault("Enter new age", strconv.Itoa(existing.Age))
	if !ok {
		return
	}

	age, err := parseAge(ageStr)
	if err != nil {
		m.println("Error: invalid age format. Please enter a number.")
		return
	}

	updated, err := m.uc.UpdateUser(ctx, user.UpdateUserRequest{ID: id, Name: name, Email: email, Age: age})
	if err != nil {
		m.printError(ctx, "updating user", err)
		return
	}
	if updated == nil {
		m.println("Could not update the user.")
		return
	}

	m.println("User updated: " + updated.String())
}

func (m *Menu) deleteUser(ctx context.Context) {
	id, ok := m.promptID("Enter ID of the user to delete: ")
	if !ok {
		return
	}

	deleted, err := m.uc.DeleteUser(ctx, id)
	if err != nil {
		m.printError(ctx, "deleting user", err)
		return
	}
	if !deleted {
		m.printNotFound(id)
		return
	}

	m.println(fmt.Sprintf("User with ID %d deleted.", id))
}

// prompt prints label and reads one line. ok is false once input is exhausted.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

// promptDefault shows the current value and returns it for an empty answer.
func (m *Menu) promptDefault(label, current string) (string, bool) {
	line, ok := m.prompt(fmt.Sprintf("%s (%s): ", label, current))
	if !ok {
		return "", false
	}
	if line == "" {
		return current, true
	}
	return line, true
}

func (m *Menu) promptID(label string) (int64, bool) {
	line, ok := m.prompt(label)
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		m.println("Error: invalid ID format. Please enter a number.")
		return 0, false
	}
	return id, true
}

// parseAge maps an empty answer to an absent age so validation reports it.
func parseAge(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	age, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &age, nil
}

// printError shows validation messages verbatim and hides storage details.
func (m *Menu) printError(ctx context.Context, action string, err error) {
	if apperrors.IsValidation(err) {
		m.println(fmt.Sprintf("Error %s: %s", action, err.Error()))
		return
	}

	logger.WithContext(ctx, m.log).Error("console command failed", zap.String("action", action), zap.Error(err))
	m.println(fmt.Sprintf("Error %s: an error occurred, please try again later.", action))
}

func (m *Menu) printNotFound(id int64) {
	m.println(fmt.Sprintf("User with ID %d not found.", id))
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}
