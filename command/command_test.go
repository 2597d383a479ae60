package command_test

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ringly/ringlytools/command"
	"github.com/ringly/ringlytools/ios"
	"howett.net/plist"
)

func pngOf(t *testing.T, height int) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, image.NewNRGBA(image.Rect(0, 0, height, height))); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

func plistOf(t *testing.T, v any, format int) []byte {
	t.Helper()

	b, err := plist.Marshal(v, format)
	if err != nil {
		t.Fatal(err)
	}

	return b
}

func writeIPA(t *testing.T, name string, files map[string][]byte) string {
	t.Helper()

	var (
		path = filepath.Join(t.TempDir(), name)
		buf  = new(bytes.Buffer)
		zw   = zip.NewWriter(buf)
	)

	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}

		if _, err = w.Write(content); err != nil {
			t.Fatal(err)
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRinglyIPA(t *testing.T) {
	var (
		ringly = writeIPA(t, "Ringly.ipa", map[string][]byte{
			"Payload/Ringly.app/Info.plist": plistOf(t, map[string]any{
				ios.KeyBundleIdentifier: "com.ringly.ringly",
				ios.KeyBundleURLTypes: []map[string]any{
					{ios.KeyBundleURLSchemes: []string{"ringly"}},
					{"CFBundleURLName": "com.ringly.ringly"},
				},
				ios.KeyBundleIcons: map[string]any{
					ios.KeyBundlePrimaryIcon: map[string]any{
						ios.KeyBundleIconFiles: []string{"AppIcon29x29", "AppIcon60x60"},
					},
				},
			}, plist.BinaryFormat),
			"Payload/Ringly.app/AppIcon29x29@2x.png": pngOf(t, 58),
			"Payload/Ringly.app/AppIcon60x60@2x.png": pngOf(t, 120),
			"Payload/Ringly.app/AppIcon60x60@3x.png": pngOf(t, 180),
		})
		other = writeIPA(t, "Other.ipa", map[string][]byte{
			"Payload/Other.app/Info.plist": plistOf(t, map[string]any{
				ios.KeyBundleIdentifier: "com.example.other",
				ios.KeyBundleIconFiles:  []string{"Icon.png"},
			}, plist.XMLFormat),
			"Payload/Other.app/Icon.png": pngOf(t, 57),
		})
		output = t.TempDir()
		stdout = new(bytes.Buffer)
		cmd    = command.SetCommon(command.NewRinglyIPA(), "v0.0.0-test")
	)

	cmd.SetArgs([]string{ringly, other, "--native", "--imageoutput", output})
	cmd.SetOut(stdout)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}

	expected := "Ringly.ipa\n" +
		" com.ringly.ringly\n" +
		" URL Types:\n" +
		"  ringly\n" +
		"\n" +
		"Other.ipa\n" +
		" com.example.other\n" +
		" URL Types:\n" +
		"  Can't support, no URL types!\n" +
		"\n"
	if diff := cmp.Diff(expected, stdout.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	for name, icon := range map[string][]byte{
		"Ringly.app.png": pngOf(t, 180),
		"Other.app.png":  pngOf(t, 57),
	} {
		b, err := os.ReadFile(filepath.Join(output, name))
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(icon, b) {
			t.Errorf("%s is not the largest icon", name)
		}
	}
}

func TestRinglyIPARequiresArgs(t *testing.T) {
	cmd := command.NewRinglyIPA()
	cmd.SetArgs([]string{})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected an error without any .ipas")
	}
}

func TestRinglyIPAStopsAtFirstError(t *testing.T) {
	var (
		ok = writeIPA(t, "OK.ipa", map[string][]byte{
			"Payload/OK.app/Info.plist": plistOf(t, map[string]any{
				ios.KeyBundleIdentifier: "com.example.ok",
			}, plist.XMLFormat),
		})
		noIcons = writeIPA(t, "NoIcons.ipa", map[string][]byte{
			"Payload/NoIcons.app/Info.plist": plistOf(t, map[string]any{
				ios.KeyBundleIdentifier: "com.example.noicons",
				ios.KeyBundleIconFiles:  []string{"Icon"},
			}, plist.XMLFormat),
		})
		stdout = new(bytes.Buffer)
		cmd    = command.SetCommon(command.NewRinglyIPA(), "v0.0.0-test")
	)

	cmd.SetArgs([]string{noIcons, ok, "--native", "--imageoutput", t.TempDir()})
	cmd.SetOut(stdout)

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected an error for an app without icons")
	}

	expected := "NoIcons.ipa\n" +
		" com.example.noicons\n" +
		" URL Types:\n" +
		"  Can't support, no URL types!\n"
	if diff := cmp.Diff(expected, stdout.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMergeSchemes(t *testing.T) {
	var (
		dir      = t.TempDir()
		appsPath = filepath.Join(dir, ios.AppsPlistName)
		infoPath = filepath.Join(dir, ios.InfoPlistName)
		cmd      = command.SetCommon(command.NewMergeSchemes(), "v0.0.0-test")
	)

	if err := os.WriteFile(appsPath, plistOf(t, []map[string]any{
		{"Name": "Slack", "Scheme": "slack", "Identifiers": "com.tinyspeck.chatlyio", "Analytics": "Slack"},
	}, plist.XMLFormat), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(infoPath, plistOf(t, map[string]any{
		ios.KeyBundleIdentifier: "com.ringly.ringly",
	}, plist.XMLFormat), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd.SetArgs([]string{"--registry", appsPath, "--info", infoPath})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(infoPath)
	if err != nil {
		t.Fatal(err)
	}

	info := map[string]any{}
	if _, err = plist.Unmarshal(b, &info); err != nil {
		t.Fatal(err)
	}

	expected := []any{"googlegmail", "inbox-gmail", "message", "itms-apps", "fbauth2", "slack"}
	if diff := cmp.Diff(expected, info[ios.KeyApplicationQueriesSchemes]); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMergeSchemesNoArgs(t *testing.T) {
	cmd := command.NewMergeSchemes()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected an error for a positional argument")
	}
}
