package analysis

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamaar/ngessentials/pkg/tree"
	"github.com/mamaar/ngessentials/pkg/types"
)

func newTestParser() *Parser {
	return NewParser(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const generatedModule = `import { BrowserModule } from '@angular/platform-browser';
import { NgModule } from '@angular/core';

import { AppComponent } from './app.component';

@NgModule({
  declarations: [
    AppComponent
  ],
  imports: [
    BrowserModule
  ],
  providers: [],
  bootstrap: [AppComponent]
})
export class AppModule { }
`

func apply(t *testing.T, source string, edits []types.Edit) string {
	t.Helper()
	out, err := tree.ApplyEdits([]byte(source), edits)
	require.NoError(t, err)
	return string(out)
}

func TestProviderInsertions_GeneratedModule(t *testing.T) {
	edits, err := newTestParser().ProviderInsertions(context.Background(), "app.module.ts",
		[]byte(generatedModule), "NgModule", "ENV_PROVIDERS", "../environments/environment")
	require.NoError(t, err)
	require.Len(t, edits, 2)
	assert.Equal(t, types.Insert, edits[0].Kind)
	assert.Equal(t, types.Insert, edits[1].Kind)

	want := `import { BrowserModule } from '@angular/platform-browser';
import { NgModule } from '@angular/core';

import { AppComponent } from './app.component';
import { ENV_PROVIDERS } from '../environments/environment';

@NgModule({
  declarations: [
    AppComponent
  ],
  imports: [
    BrowserModule
  ],
  providers: [ENV_PROVIDERS],
  bootstrap: [AppComponent]
})
export class AppModule { }
`
	assert.Equal(t, want, apply(t, generatedModule, edits))
}

func TestProviderInsertions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name: "missing providers field copies indentation",
			source: `import { NgModule } from '@angular/core';
@NgModule({
  declarations: [AppComponent],
  bootstrap: [AppComponent]
})
export class AppModule {}
`,
			want: `import { NgModule } from '@angular/core';
import { ENV_PROVIDERS } from '../environments/environment';
@NgModule({
  declarations: [AppComponent],
  bootstrap: [AppComponent],
  providers: [ENV_PROVIDERS]
})
export class AppModule {}
`,
		},
		{
			name:   "single line metadata",
			source: "import { NgModule } from '@angular/core';\n@NgModule({ declarations: [] })\nexport class M {}\n",
			want:   "import { NgModule } from '@angular/core';\nimport { ENV_PROVIDERS } from '../environments/environment';\n@NgModule({ declarations: [], providers: [ENV_PROVIDERS] })\nexport class M {}\n",
		},
		{
			name:   "empty metadata object",
			source: "import { NgModule } from '@angular/core';\n@NgModule({})\nexport class M {}\n",
			want:   "import { NgModule } from '@angular/core';\nimport { ENV_PROVIDERS } from '../environments/environment';\n@NgModule({  providers: [ENV_PROVIDERS]\n})\nexport class M {}\n",
		},
		{
			name: "multi line providers",
			source: `import { NgModule } from '@angular/core';
@NgModule({
  providers: [
    HttpService,
    AuthGuard
  ]
})
export class M {}
`,
			want: `import { NgModule } from '@angular/core';
import { ENV_PROVIDERS } from '../environments/environment';
@NgModule({
  providers: [
    HttpService,
    AuthGuard,
    ENV_PROVIDERS
  ]
})
export class M {}
`,
		},
		{
			name:   "inline providers and existing named import",
			source: "import { environment } from '../environments/environment';\n@NgModule({ providers: [A] })\nexport class M {}\n",
			want:   "import { environment, ENV_PROVIDERS } from '../environments/environment';\n@NgModule({ providers: [A, ENV_PROVIDERS] })\nexport class M {}\n",
		},
		{
			name:   "default import from the same path",
			source: "import env from '../environments/environment';\n@NgModule({ providers: [] })\nexport class M {}\n",
			want:   "import env, { ENV_PROVIDERS } from '../environments/environment';\n@NgModule({ providers: [ENV_PROVIDERS] })\nexport class M {}\n",
		},
		{
			name:   "no imports at all",
			source: "@NgModule({ providers: [] })\nexport class M {}\n",
			want:   "import { ENV_PROVIDERS } from '../environments/environment';\n@NgModule({ providers: [ENV_PROVIDERS] })\nexport class M {}\n",
		},
		{
			name:   "already imported",
			source: "import { ENV_PROVIDERS } from '../environments/environment';\n@NgModule({ providers: [] })\nexport class M {}\n",
			want:   "import { ENV_PROVIDERS } from '../environments/environment';\n@NgModule({ providers: [ENV_PROVIDERS] })\nexport class M {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edits, err := newTestParser().ProviderInsertions(context.Background(), "app.module.ts",
				[]byte(tt.source), "NgModule", "ENV_PROVIDERS", "../environments/environment")
			require.NoError(t, err)
			assert.Equal(t, tt.want, apply(t, tt.source, edits))
		})
	}
}

func TestProviderInsertions_AlreadyProvided(t *testing.T) {
	source := "import { ENV_PROVIDERS } from '../environments/environment';\n@NgModule({ providers: [ENV_PROVIDERS] })\nexport class M {}\n"

	edits, err := newTestParser().ProviderInsertions(context.Background(), "app.module.ts",
		[]byte(source), "NgModule", "ENV_PROVIDERS", "../environments/environment")
	require.NoError(t, err)
	assert.Empty(t, edits)
}

func TestProviderInsertions_NonArrayProviders(t *testing.T) {
	source := "import { NgModule } from '@angular/core';\n@NgModule({ providers: PROVIDERS })\nexport class M {}\n"

	edits, err := newTestParser().ProviderInsertions(context.Background(), "app.module.ts",
		[]byte(source), "NgModule", "ENV_PROVIDERS", "../environments/environment")
	require.NoError(t, err)
	assert.Empty(t, edits)
}

func TestProviderInsertions_NoDecorator(t *testing.T) {
	edits, err := newTestParser().ProviderInsertions(context.Background(), "app.module.ts",
		[]byte("export class AppModule {}\n"), "NgModule", "ENV_PROVIDERS", "../environments/environment")
	require.NoError(t, err)
	assert.Empty(t, edits)
}

func TestAddEnvProviders(t *testing.T) {
	tr := tree.New(tree.NewMemHost(map[string]string{"src/app/app.module.ts": generatedModule}))
	p := newTestParser()

	require.NoError(t, p.AddEnvProviders(context.Background(), tr, "src"))
	first, _, err := tr.Read("src/app/app.module.ts")
	require.NoError(t, err)
	assert.Contains(t, string(first), "providers: [ENV_PROVIDERS]")
	assert.Contains(t, string(first), "import { ENV_PROVIDERS } from '../environments/environment';")

	// Running again finds the provider in place and changes nothing.
	require.NoError(t, p.AddEnvProviders(context.Background(), tr, "src"))
	second, _, err := tr.Read("src/app/app.module.ts")
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestAddEnvProviders_LeavesUnsupportedModulesAlone(t *testing.T) {
	sources := map[string]string{
		"non-array providers": "import { NgModule } from '@angular/core';\n@NgModule({ providers: PROVIDERS })\nexport class M {}\n",
		"no decorator":        "export class AppModule {}\n",
	}
	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			tr := tree.New(tree.NewMemHost(map[string]string{"src/app/app.module.ts": source}))

			require.NoError(t, newTestParser().AddEnvProviders(context.Background(), tr, "src"))

			data, _, err := tr.Read("src/app/app.module.ts")
			require.NoError(t, err)
			assert.Equal(t, source, string(data))
			assert.Empty(t, tr.Actions())
		})
	}
}

func TestAddEnvProviders_SourceNotFound(t *testing.T) {
	tr := tree.New(tree.NewMemHost(nil))

	err := newTestParser().AddEnvProviders(context.Background(), tr, "src")
	assert.ErrorIs(t, err, types.ErrSourceNotFound)
}
