package platform

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/app-inspector/internal/checksum"
	"github.com/ytget/app-inspector/internal/logging"
	"github.com/ytget/app-inspector/internal/model"
	"github.com/ytget/app-inspector/internal/retry"
	"github.com/ytget/app-inspector/internal/screen"
)

const (
	helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	basePath    = "/data/app/~~Xy==/com.example.notes-Ab==/base.apk"
)

const dumpsysNotes = `Activity Resolver Table:
  Non-Data Actions:
Packages:
  Package [com.example.notes] (1a2b3c):
    userId=10123
    pkg=Package{4d5e6f com.example.notes}
    codePath=/data/app/~~Xy==/com.example.notes-Ab==
    versionCode=4021 minSdk=24 targetSdk=34
    versionName=4.2.1
    flags=[ HAS_CODE ALLOW_CLEAR_USER_DATA ]
    pkgFlags=[ HAS_CODE ALLOW_CLEAR_USER_DATA ]
Hidden system packages:
  Package [com.example.notes] (7a8b9c):
    versionCode=1 minSdk=24 targetSdk=34
    versionName=1.0
    pkgFlags=[ SYSTEM HAS_CODE ]
`

func testPipeline(t *testing.T, attempts int) *checksum.Pipeline {
	t.Helper()
	p, err := checksum.NewPipeline(retry.NewExecutor(), retry.Policy{
		MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Factor: 1,
	}, logging.Discard())
	require.NoError(t, err)
	return p
}

func notesRunner() *fakeRunner {
	return newFakeRunner().
		on("pm path com.example.notes", "package:"+basePath+"\npackage:/data/app/~~Xy==/com.example.notes-Ab==/split_config.en.apk\n", nil).
		on("dumpsys package com.example.notes", dumpsysNotes, nil).
		on("cmd package resolve-activity --brief -c android.intent.category.LAUNCHER com.example.notes",
			"priority=0 preferredOrder=0 match=0x108000 specificIndex=-1 isDefault=true\ncom.example.notes/.MainActivity\n", nil).
		on("cat "+basePath, "hello", nil)
}

func TestParsePackageList(t *testing.T) {
	out := []byte("package:/data/app/~~a==/com.example.notes-b==/base.apk=com.example.notes\n" +
		"package:/system/app/Settings/Settings.apk=com.android.settings\n" +
		"package:org.mozilla.firefox\n" +
		"WARNING: linker: something\n" +
		"package:\n")

	apps := ParsePackageList(out)
	assert.Equal(t, []model.AppEntry{
		{DisplayName: "Notes", Identifier: "com.example.notes"},
		{DisplayName: "Settings", Identifier: "com.android.settings"},
		{DisplayName: "Firefox", Identifier: "org.mozilla.firefox"},
	}, apps)
}

func TestDisplayNameFromID(t *testing.T) {
	tests := map[string]string{
		"com.example.photo_editor":        "Photo editor",
		"com.whatsapp":                    "Whatsapp",
		"com.google.android.apps.maps":    "Maps",
		"com.spotify.music":               "Music",
		"com.instagram.android":           "Instagram",
		"ru.yandex.mobile.client.app":     "Yandex",
		"single":                          "Single",
		"com.example.ümlaut":              "Ümlaut",
		"com.google.android.apps.android": "Google",
	}
	for id, want := range tests {
		assert.Equal(t, want, DisplayNameFromID(id), id)
	}
}

func TestParseDumpsys_FirstSectionWins(t *testing.T) {
	d := ParseDumpsys([]byte(dumpsysNotes))
	assert.Equal(t, "4.2.1", d.VersionName)
	assert.Equal(t, int64(4021), d.VersionCode)
	assert.False(t, d.IsSystem)

	sys := ParseDumpsys([]byte("    versionCode=33 minSdk=33\n    pkgFlags=[ SYSTEM HAS_CODE PERSISTENT ]\n"))
	assert.True(t, sys.IsSystem)
	assert.Empty(t, sys.VersionName)
	assert.Equal(t, int64(33), sys.VersionCode)
}

func TestParseArchivePath(t *testing.T) {
	assert.Equal(t, basePath, ParseArchivePath([]byte("package:/x/split_a.apk\npackage:"+basePath+"\n")))
	assert.Equal(t, "/x/only.apk", ParseArchivePath([]byte("package:/x/only.apk\n")))
	assert.Empty(t, ParseArchivePath(nil))
}

func TestParseLauncherComponent(t *testing.T) {
	assert.Equal(t, "com.a/.Main", ParseLauncherComponent([]byte("priority=0 preferredOrder=0\ncom.a/.Main\n")))
	assert.Empty(t, ParseLauncherComponent([]byte("No activity found\n")))
	assert.Empty(t, ParseLauncherComponent(nil))
}

func TestPackageManager_ListApps(t *testing.T) {
	runner := newFakeRunner().on("pm list packages -f", "package:/a/base.apk=com.b.zeta\npackage:/b/base.apk=com.a.alpha\n", nil)
	pm := NewPackageManager(runner, nil, logging.Discard())

	apps, err := pm.ListApps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.AppEntry{
		{DisplayName: "Zeta", Identifier: "com.b.zeta"},
		{DisplayName: "Alpha", Identifier: "com.a.alpha"},
	}, apps, "provider order is preserved")
}

func TestPackageManager_ListAppsPermission(t *testing.T) {
	denied := fmt.Errorf("%w: java.lang.SecurityException", fs.ErrPermission)
	pm := NewPackageManager(newFakeRunner().on("pm list packages -f", "", denied), nil, logging.Discard())

	_, err := pm.ListApps(context.Background())
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestPackageManager_AppDetails(t *testing.T) {
	pm := NewPackageManager(notesRunner(), testPipeline(t, 2), logging.Discard())

	d, err := pm.AppDetails(context.Background(), "com.example.notes")
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.Equal(t, &model.AppDetails{
		Identifier:  "com.example.notes",
		Label:       "Notes",
		VersionName: "4.2.1",
		VersionCode: 4021,
		IsSystem:    false,
		Checksum:    helloSHA256,
		Launchable:  true,
		SourcePath:  basePath,
	}, d)
}

func missingRunner() *fakeRunner {
	return newFakeRunner().
		on("pm path com.missing", "", errors.New("exit status 1")).
		on("dumpsys package com.missing", "Unable to find package: com.missing\n", nil)
}

func TestPackageManager_AppDetailsUnknownPackage(t *testing.T) {
	pm := NewPackageManager(missingRunner(), testPipeline(t, 1), logging.Discard())

	d, err := pm.AppDetails(context.Background(), "com.missing")
	assert.NoError(t, err)
	assert.Nil(t, d)
}

// transportFailures fail every command the way an unreachable device does
func transportFailures() map[string]error {
	return map[string]error{
		"adb binary missing": fmt.Errorf("adb exec-out pm path com.example.notes: %w", exec.ErrNotFound),
		"no devices":         errors.New("adb exec-out pm path com.example.notes: exit status 1: error: no devices/emulators found"),
	}
}

func TestPackageManager_AppDetailsTransportFailure(t *testing.T) {
	for name, failure := range transportFailures() {
		t.Run(name, func(t *testing.T) {
			runner := newFakeRunner().
				on("pm path com.example.notes", "", failure).
				on("dumpsys package com.example.notes", "", failure)
			pm := NewPackageManager(runner, testPipeline(t, 1), logging.Discard())

			d, err := pm.AppDetails(context.Background(), "com.example.notes")
			require.Error(t, err)
			assert.Nil(t, d)
			assert.NotErrorIs(t, err, ErrPackageNotFound)
			assert.ErrorIs(t, err, failure)

			var unknown *model.UnknownError
			assert.ErrorAs(t, screen.Classify(err, "com.example.notes"), &unknown)
		})
	}
}

func TestPackageManager_ArchivePathEmptyOutputIsNotAbsence(t *testing.T) {
	runner := newFakeRunner().
		on("pm path com.example.notes", "", nil).
		on("dumpsys package com.example.notes", dumpsysNotes, nil)
	pm := NewPackageManager(runner, nil, logging.Discard())

	_, err := pm.ArchivePath(context.Background(), "com.example.notes")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPackageNotFound)
}

func TestPackageManager_ArchivePathCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := newFakeRunner().on("pm path com.example.notes", "", context.Canceled)
	pm := NewPackageManager(runner, nil, logging.Discard())

	_, err := pm.ArchivePath(ctx, "com.example.notes")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, runner.Calls(), "dumpsys package com.example.notes", "no absence check once cancelled")
}

func TestPackageManager_AppDetailsChecksumDegrades(t *testing.T) {
	runner := notesRunner().on("cat "+basePath, "", errors.New("cat: Permission denied"))
	pm := NewPackageManager(runner, testPipeline(t, 2), logging.Discard())

	d, err := pm.AppDetails(context.Background(), "com.example.notes")
	require.NoError(t, err)
	assert.Empty(t, d.Checksum)
	assert.False(t, d.HasChecksum())
	assert.Equal(t, "4.2.1", d.VersionName)

	cats := 0
	for _, c := range runner.Calls() {
		if c == "cat "+basePath {
			cats++
		}
	}
	assert.Equal(t, 2, cats, "the stream is reopened on every attempt")
}

func TestPackageManager_AppDetailsPermission(t *testing.T) {
	denied := fmt.Errorf("%w: Permission Denial", fs.ErrPermission)
	runner := newFakeRunner().on("pm path com.secret", "", denied)
	pm := NewPackageManager(runner, nil, logging.Discard())

	_, err := pm.AppDetails(context.Background(), "com.secret")
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestPackageManager_Launch(t *testing.T) {
	resolve := "cmd package resolve-activity --brief -c android.intent.category.LAUNCHER "

	tests := []struct {
		name   string
		id     string
		runner *fakeRunner
		want   model.LaunchResult
	}{
		{
			name:   "success",
			id:     "com.example.notes",
			runner: notesRunner().on("am start -n com.example.notes/.MainActivity", "Starting: Intent { cmp=com.example.notes/.MainActivity }\n", nil),
			want:   model.LaunchSuccess{},
		},
		{
			name:   "not installed",
			id:     "com.missing",
			runner: missingRunner(),
			want:   model.LaunchNotFound{ID: "com.missing"},
		},
		{
			name: "no launcher activity",
			id:   "com.service",
			runner: newFakeRunner().
				on("pm path com.service", "package:/x/base.apk\n", nil).
				on(resolve+"com.service", "No activity found\n", errors.New("exit status 1")),
			want: model.LaunchNotSupported{},
		},
		{
			name: "activity manager error",
			id:   "com.example.notes",
			runner: notesRunner().on("am start -n com.example.notes/.MainActivity",
				"Starting: Intent { cmp=com.example.notes/.MainActivity }\nError type 3\nError: Activity class does not exist.\n", nil),
			want: model.LaunchError{Message: "Error type 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPackageManager(tt.runner, nil, logging.Discard())
			assert.Equal(t, tt.want, pm.Launch(context.Background(), tt.id))
		})
	}
}

func TestPackageManager_LaunchTransportFailure(t *testing.T) {
	for name, failure := range transportFailures() {
		t.Run(name, func(t *testing.T) {
			runner := newFakeRunner().
				on("pm path com.example.notes", "", failure).
				on("dumpsys package com.example.notes", "", failure)
			pm := NewPackageManager(runner, nil, logging.Discard())

			result := pm.Launch(context.Background(), "com.example.notes")
			require.IsType(t, model.LaunchError{}, result)
			assert.Contains(t, result.(model.LaunchError).Message, failure.Error())
		})
	}
}
