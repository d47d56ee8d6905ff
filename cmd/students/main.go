package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"studereg/internal/console"
	"studereg/internal/models"
	"studereg/internal/repository"
	"studereg/internal/service"
	"studereg/pkg/config"
	"studereg/pkg/database"
	"studereg/pkg/export"
	"studereg/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	store := database.NewStore(cfg.Database)
	defer store.Close() //nolint:errcheck

	if _, err := store.Connect(); err != nil {
		logr.Fatal("failed to open datastore", zap.Error(err))
	}

	repo := repository.NewStudentRepository(store)
	svc := service.NewStudentService(repo, nil, logr, export.NewWriter(cfg.Export.Dir))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui := console.New(os.Stdin, os.Stdout)
	run(ctx, ui, svc)

	fmt.Println("Goodbye!")
}

func run(ctx context.Context, ui *console.Console, svc *service.StudentService) {
	for {
		select {
		case <-ctx.Done():
			ui.Printf("\nInterrupted, shutting down.\n")
			return
		default:
		}

		printMenu(ui)
		choice, err := ui.ReadLine("Choose an option: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			ui.Printf("Error: %v\n", err)
			continue
		}

		var done bool
		switch choice {
		case "1":
			err = registerStudent(ctx, ui, svc)
		case "2":
			err = listStudents(ctx, ui, svc)
		case "3":
			err = searchStudents(ctx, ui, svc)
		case "4":
			err = updateStudent(ctx, ui, svc)
		case "5":
			err = removeStudent(ctx, ui, svc)
		case "6":
			err = showStatistics(ctx, ui, svc)
		case "7":
			err = exportReport(ctx, ui, svc)
		case "0":
			done = true
		default:
			ui.Printf("Invalid option, try again.\n")
		}
		if done {
			return
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			ui.Printf("Error: %v\n", err)
		}
	}
}

func printMenu(ui *console.Console) {
	ui.Printf("\n==============================================\n")
	ui.Printf("STUDENT REGISTRY\n")
	ui.Printf("==============================================\n")
	ui.Printf("1. Register new student\n")
	ui.Printf("2. List all students\n")
	ui.Printf("3. Search students by name\n")
	ui.Printf("4. Update student\n")
	ui.Printf("5. Remove student\n")
	ui.Printf("6. Statistics\n")
	ui.Printf("7. Export report\n")
	ui.Printf("0. Quit\n")
}

func registerStudent(ctx context.Context, ui *console.Console, svc *service.StudentService) error {
	name, err := ui.ReadLine("Full name: ")
	if err != nil {
		return err
	}
	age, err := ui.ReadOptionalInt("Age (blank to skip): ")
	if err != nil {
		return err
	}
	course, err := ui.ReadLine("Course (blank to skip): ")
	if err != nil {
		return err
	}
	score, err := ui.ReadOptionalFloat("Score 0-10 (blank to skip): ")
	if err != nil {
		return err
	}

	student, err := svc.Create(ctx, service.CreateStudentInput{Name: name, Age: age, Course: course, Score: score})
	if err != nil {
		return err
	}
	ui.Printf("Registered: %s\n", student)
	return nil
}

func listStudents(ctx context.Context, ui *console.Console, svc *service.StudentService) error {
	students, err := svc.List(ctx)
	if err != nil {
		return err
	}
	ui.RenderStudents(students, "ALL STUDENTS")
	return nil
}

func searchStudents(ctx context.Context, ui *console.Console, svc *service.StudentService) error {
	fragment, err := ui.ReadLine("Name contains: ")
	if err != nil {
		return err
	}
	students, err := svc.Search(ctx, fragment)
	if err != nil {
		return err
	}
	ui.RenderStudents(students, "SEARCH RESULTS")
	return nil
}

func updateStudent(ctx context.Context, ui *console.Console, svc *service.StudentService) error {
	id, err := ui.ReadID("Student id: ")
	if err != nil {
		return err
	}
	current, err := svc.Get(ctx, id)
	if err != nil {
		return err
	}
	ui.Printf("Current: %s\n", current)
	ui.Printf("Leave a field blank to keep its value.\n")

	upd := models.StudentUpdate{}
	if name, err := ui.ReadLine("New name: "); err != nil {
		return err
	} else if name != "" {
		upd.Name = &name
	}
	age, err := ui.ReadOptionalInt("New age: ")
	if err != nil {
		return err
	}
	upd.Age = age
	if course, err := ui.ReadLine("New course: "); err != nil {
		return err
	} else if course != "" {
		upd.Course = &course
	}
	score, clear, err := ui.ReadClearableFloat(`New score ("-" clears it): `)
	if err != nil {
		return err
	}
	upd.Score = score
	upd.ClearScore = clear

	ok, err := svc.Update(ctx, id, upd)
	if err != nil {
		return err
	}
	if ok {
		ui.Printf("Student %d updated.\n", id)
	}
	return nil
}

func removeStudent(ctx context.Context, ui *console.Console, svc *service.StudentService) error {
	id, err := ui.ReadID("Student id: ")
	if err != nil {
		return err
	}
	ok, err := svc.Remove(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		ui.Printf("Student %d removed.\n", id)
	}
	return nil
}

func showStatistics(ctx context.Context, ui *console.Console, svc *service.StudentService) error {
	stats, err := svc.Statistics(ctx)
	if err != nil {
		return err
	}
	ui.RenderStatistics(stats)
	return nil
}

func exportReport(ctx context.Context, ui *console.Console, svc *service.StudentService) error {
	kind, err := ui.ReadLine("Report (roster/statistics): ")
	if err != nil {
		return err
	}
	format, err := ui.ReadLine("Format (csv/pdf): ")
	if err != nil {
		return err
	}

	var path string
	switch kind {
	case "roster":
		path, err = svc.ExportRoster(ctx, format)
	case "statistics":
		path, err = svc.ExportStatistics(ctx, format)
	default:
		ui.Printf("Unknown report %q.\n", kind)
		return nil
	}
	if err != nil {
		return err
	}
	ui.Printf("Report written to %s\n", path)
	return nil
}
