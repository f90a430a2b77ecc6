package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"verdant/internal/driver"
	"verdant/internal/ui"
)

// runWithUI runs work in the background while a progress view follows its
// events. The view quits once work returns and the events are drained.
func runWithUI(ctx context.Context, title string, files []string, work func(driver.ProgressSink) error) error {
	events := make(chan driver.Event, 256)
	outcome := make(chan error, 1)

	go func() {
		err := work(driver.ChannelSink{Ch: events})
		outcome <- err
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// вид закрыт раньше времени: дочитываем события, чтобы работа завершилась
		go func() {
			for range events {
			}
		}()
	}
	err := <-outcome
	if uiErr != nil {
		return uiErr
	}
	return err
}
