package main

import (
	"context"
	"flag"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"github.com/itohio/pmmon/pkg/config"
	"github.com/itohio/pmmon/pkg/logging"
	"github.com/itohio/pmmon/pkg/panel"
	"github.com/itohio/pmmon/pkg/selector"
	"github.com/itohio/pmmon/pkg/sensor"
)

// panelFrameInterval is how often latched panel changes are pushed to the screen.
const panelFrameInterval = 33 * time.Millisecond

func main() {
	var (
		portFlag     = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyUSB0)")
		configFlag   = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag     = flag.Bool("mock", false, "Use mocked sensor instead of serial port")
		checksumFlag = flag.String("checksum", "", "Checksum mode override (strict or lenient)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	// Override checksum mode if provided via command line
	if *checksumFlag != "" {
		cfg.Frame.Checksum = *checksumFlag
		if _, err := cfg.ChecksumMode(); err != nil {
			log.Fatalf("Invalid -checksum: %v", err)
		}
	}

	if err := logging.Setup(cfg.Log, nil); err != nil {
		log.Warnf("Logging: %v", err)
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.pmmon")

	// Create main window
	window := application.NewWindow("PM Monitor")
	window.Resize(fyne.NewSize(560, 360))
	window.CenterOnScreen()

	state := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		window:     window,
		useMock:    *mockFlag,
		panel:      panel.New(),
		status:     newStatusBar(),
	}

	toolbar := createToolbar(state)

	content := container.NewBorder(
		toolbar,
		state.status.container,
		nil,
		nil,
		state.panel,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go runPanelRefresh(ctx, state.panel)

	application.Lifecycle().SetOnStopped(func() {
		cancel()
		state.closeSession()
	})

	window.SetContent(content)
	window.ShowAndRun()
}

// appState holds the application state.
type appState struct {
	cfg        *config.Config
	configPath string
	window     fyne.Window
	useMock    bool

	panel      *panel.Panel
	status     *statusBar
	connectBtn *widget.Button
	selectBtns [2]*widget.Button

	session *session // Current session (nil if not connected)
}

// createToolbar creates the application toolbar with Connect, Settings and the
// two channel select buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	// S3 selects PM2.5, S4 selects PM10
	s3 := widget.NewButton("S3 PM2.5", func() {
		handleSelect(state, selector.ButtonA)
	})
	s4 := widget.NewButton("S4 PM10", func() {
		handleSelect(state, selector.ButtonB)
	})
	s3.Disable()
	s4.Disable()
	state.selectBtns = [2]*widget.Button{s3, s4}

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(connectBtn, settingsBtn), // left
		container.NewHBox(s3, s4),                  // right
		nil,                                        // center (spacer)
	)
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.session != nil {
		state.closeSession()
		state.connectBtn.SetIcon(theme.LoginIcon())
		setSelectEnabled(state, false)
		return
	}

	var device sensor.Device
	if state.useMock {
		device = sensor.NewMock(&state.cfg.Mock)
	} else {
		device = sensor.New(state.cfg.Serial.Port, state.cfg.Serial.BaudRate, sensor.DefaultBufferSize)
	}

	s, err := startSession(state, device)
	if err != nil {
		showError(state, err)
		return
	}
	state.session = s
	state.connectBtn.SetIcon(theme.LogoutIcon())
	setSelectEnabled(state, true)
}

// closeSession stops the current session, if any.
func (state *appState) closeSession() {
	if state.session == nil {
		return
	}
	state.session.close()
	state.session = nil
}

// restartSession reconnects with the current configuration if a session is running.
func restartSession(state *appState) {
	if state.session == nil {
		return
	}
	handleConnect(state) // disconnect
	handleConnect(state) // connect with new settings
}

// runPanelRefresh pushes panel changes to the screen at a fixed frame rate.
// The panel lines are toggled every few milliseconds, far faster than the
// UI needs to redraw.
func runPanelRefresh(ctx context.Context, p *panel.Panel) {
	ticker := time.NewTicker(panelFrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(func() {
				p.Flush()
			})
		}
	}
}
