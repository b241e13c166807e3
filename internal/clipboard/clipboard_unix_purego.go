//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	backend      *selectionOwner
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		backend, initErr = newSelectionOwner()
	})
	return initErr
}

// WriteImage publishes img as PNG. The X connection keeps serving the
// selection until another client takes ownership.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return backend.publish(backend.atoms.imageOffer(buf.Bytes()))
}

// WriteText publishes text. It is offered as plain UTF-8 and as text/csv
// so spreadsheets paste a table export as cells.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return backend.publish(backend.atoms.textOffer([]byte(text)))
}

// ReadText returns text from the clipboard, trying each text target in
// turn.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	var lastErr error
	for _, target := range backend.atoms.textTargets() {
		data, err := backend.read(target)
		if err != nil {
			lastErr = err
			continue
		}
		data = bytes.TrimRight(data, "\x00")
		if len(data) > 0 {
			return string(data), nil
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", fmt.Errorf("clipboard does not contain text data")
}

// atoms are the interned names the clipboard speaks.
type atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	csv       xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func internAtoms(conn *xgb.Conn) (atoms, error) {
	names := []string{"CLIPBOARD", "TARGETS", "UTF8_STRING", "text/plain;charset=utf-8", "text/csv", "image/png", "DOTSCOPE_CLIPBOARD"}
	ids := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atoms{}, fmt.Errorf("intern %s: %w", name, err)
		}
		ids[i] = reply.Atom
	}
	return atoms{
		clipboard: ids[0], targets: ids[1], utf8: ids[2], textPlain: ids[3],
		csv: ids[4], png: ids[5], property: ids[6],
	}, nil
}

// textTargets lists the targets text is read from, most preferred first.
func (a atoms) textTargets() []xproto.Atom {
	return []xproto.Atom{a.utf8, a.textPlain, xproto.AtomString}
}

// offer is what the selection owner serves: one payload per target, in
// the order the targets are advertised.
type offer struct {
	order   []xproto.Atom
	payload map[xproto.Atom][]byte
}

func newOffer(data []byte, targets ...xproto.Atom) offer {
	o := offer{payload: map[xproto.Atom][]byte{}}
	data = append([]byte(nil), data...)
	for _, t := range targets {
		o.order = append(o.order, t)
		o.payload[t] = data
	}
	return o
}

func (a atoms) textOffer(text []byte) offer {
	return newOffer(text, append(a.textTargets(), a.csv)...)
}

func (a atoms) imageOffer(data []byte) offer {
	return newOffer(data, a.png)
}

// reply returns the property type, format and data answering a request
// for target. ok is false when the target is not offered.
func (o offer) reply(a atoms, target xproto.Atom) (typ xproto.Atom, format byte, data []byte, ok bool) {
	if target == a.targets {
		list := append([]xproto.Atom{a.targets}, o.order...)
		buf := make([]byte, len(list)*4)
		for i, t := range list {
			xgb.Put32(buf[i*4:], uint32(t))
		}
		return xproto.AtomAtom, 32, buf, true
	}
	data, ok = o.payload[target]
	if !ok || len(data) == 0 {
		return 0, 0, nil, false
	}
	return target, 8, data, true
}

// selectionOwner holds the CLIPBOARD selection on a private window and
// answers requests from other clients.
type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atoms

	mu      sync.RWMutex
	current offer
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	window, err := createWindow(conn, xproto.EventMaskPropertyChange|xproto.EventMaskStructureNotify)
	if err != nil {
		conn.Close()
		return nil, err
	}
	a, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}
	o := &selectionOwner{conn: conn, window: window, atoms: a}
	go o.serve()
	return o, nil
}

func createWindow(conn *xgb.Conn, mask uint32) (xproto.Window, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}
	err = xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{mask}).Check()
	return window, err
}

func (o *selectionOwner) publish(off offer) error {
	o.mu.Lock()
	o.current = off
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.current = offer{}
			o.mu.Unlock()
		}
	}
}

func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	o.mu.RLock()
	typ, format, data, ok := o.current.reply(o.atoms, e.Target)
	o.mu.RUnlock()
	if ok {
		length := uint32(len(data)) / uint32(format/8)
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, typ, format, length, data)
	} else {
		property = xproto.AtomNone
	}
	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// read converts the selection to target on a separate connection, since
// events on the owner connection are consumed by serve.
func (o *selectionOwner) read(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	window, err := createWindow(conn, xproto.EventMaskPropertyChange)
	if err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	prop := o.atoms.property
	if err := xproto.ConvertSelectionChecked(conn, window, o.atoms.clipboard, target, prop, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok || (e.Property != prop && e.Property != xproto.AtomNone) {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, fmt.Errorf("clipboard target unavailable")
		}
		reply, perr := xproto.GetProperty(conn, true, window, prop, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}
