// Package tui: ProgressModel renders a javart install's download/extract
// progress as a bubbletea program, subscribing to an events.ChannelSink.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kestrelforge/javart/internal/events"
)

// eventMsg wraps an events.Event so it can travel through bubbletea's
// Update loop as a tea.Msg.
type eventMsg events.Event

// ProgressModel is a bubbletea model showing the state of one install.
type ProgressModel struct {
	title    string
	bar      progress.Model
	sink     *events.ChannelSink
	status   events.Status
	fileName string
	done     bool
	err      error
}

// NewProgressModel builds a model that listens on sink for progress events
// emitted by the install orchestrator.
func NewProgressModel(title string, sink *events.ChannelSink) *ProgressModel {
	bar := progress.New(
		progress.WithGradient(string(ColorPrimary), string(ColorSecondary)),
		progress.WithWidth(50),
	)
	return &ProgressModel{title: title, bar: bar, sink: sink}
}

func (m *ProgressModel) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m *ProgressModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-m.sink.Events
		if !ok {
			return nil
		}
		return eventMsg(e)
	}
}

func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		switch msg.Kind {
		case events.EventDownloadProgress:
			m.status = msg.Progress.Status
			m.fileName = msg.Progress.FileName
			if msg.Progress.Status == events.StatusError {
				m.done = true
			}
			cmd := m.bar.SetPercent(msg.Progress.Percentage / 100)
			return m, tea.Batch(cmd, m.waitForEvent())
		case events.EventDownloadComplete:
			m.done = true
			return m, nil
		default:
			return m, m.waitForEvent()
		}

	case progress.FrameMsg:
		barModel, cmd := m.bar.Update(msg)
		m.bar = barModel.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *ProgressModel) View() string {
	header := TitleStyle.Render(m.title)
	file := SelectedStyle.Render(m.fileName)
	detail := lipgloss.NewStyle().Foreground(ColorSubtle).Render(fmt.Sprintf("%.0f%%", m.bar.Percent()*100))

	var status string
	switch {
	case m.status == events.StatusError:
		status = ErrorStyle.Render(fmt.Sprintf("%s failed", m.fileName))
	case m.status == events.StatusCancelled:
		status = lipgloss.NewStyle().Foreground(ColorWarning).Render("cancelled")
	case m.done:
		status = SuccessStyle.Render("done")
	default:
		status = HelpStyle.Render(fmt.Sprintf("%s — %s", file, m.status))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", m.bar.View()+"  "+detail, "", status)

	box := FocusedBoxStyle
	if m.done {
		box = BoxStyle
	}

	return ContainerStyle.Render(box.Render(content))
}
