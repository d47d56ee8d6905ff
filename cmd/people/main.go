package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"studereg/internal/console"
	"studereg/internal/postal"
	"studereg/internal/repository"
	"studereg/internal/service"
	"studereg/pkg/config"
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

	repo := repository.NewPersonRepository()
	client := postal.NewClient(cfg.Postal)
	svc := service.NewPersonService(repo, client, logr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui := console.New(os.Stdin, os.Stdout)
	run(ctx, ui, svc)
}

func run(ctx context.Context, ui *console.Console, svc *service.PersonService) {
	for {
		select {
		case <-ctx.Done():
			ui.Printf("\nInterrupted, shutting down.\n")
			return
		default:
		}

		ui.Printf("\n=============================\n")
		ui.Printf("PEOPLE REGISTRY\n")
		ui.Printf("=============================\n")
		ui.Printf("1. Register person\n")
		ui.Printf("2. List people\n")
		ui.Printf("3. Update person\n")
		ui.Printf("4. Remove person\n")
		ui.Printf("0. Quit\n")

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
			err = createPerson(ctx, ui, svc)
		case "2":
			ui.RenderPeople(svc.List())
		case "3":
			err = updatePerson(ctx, ui, svc)
		case "4":
			err = removePerson(ui, svc)
		case "0":
			done = true
		default:
			ui.Printf("Invalid option, try again.\n")
		}
		if done {
			ui.Printf("Goodbye!\n")
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

func createPerson(ctx context.Context, ui *console.Console, svc *service.PersonService) error {
	name, err := ui.ReadLine("Name: ")
	if err != nil {
		return err
	}
	code, err := ui.ReadLine("Postal code: ")
	if err != nil {
		return err
	}
	person, err := svc.Create(ctx, name, code)
	if err != nil {
		return err
	}
	ui.Printf("Registered: %s\n", person)
	return nil
}

func updatePerson(ctx context.Context, ui *console.Console, svc *service.PersonService) error {
	id, err := ui.ReadID("Person id: ")
	if err != nil {
		return err
	}
	name, err := ui.ReadLine("New name: ")
	if err != nil {
		return err
	}
	code, err := ui.ReadLine("New postal code: ")
	if err != nil {
		return err
	}
	ok, err := svc.Update(ctx, id, name, code)
	if err != nil {
		return err
	}
	if ok {
		ui.Printf("Person %d updated.\n", id)
	}
	return nil
}

func removePerson(ui *console.Console, svc *service.PersonService) error {
	id, err := ui.ReadID("Person id: ")
	if err != nil {
		return err
	}
	ok, err := svc.Remove(id)
	if err != nil {
		return err
	}
	if ok {
		ui.Printf("Person %d removed.\n", id)
	}
	return nil
}
