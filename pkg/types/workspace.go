package types

// Well-known files of an Angular workspace, relative to its root
const (
	AngularJSON  = "angular.json"
	PackageJSON  = "package.json"
	TSLintJSON   = "tslint.json"
	TSConfigJSON = "tsconfig.json"
	LaunchJSON   = ".vscode/launch.json"
)

// CollectionName is the schematic collection the preset registers itself under
const CollectionName = "ng-essentials"

// DefaultElementPrefix is used when a project declares no prefix
const DefaultElementPrefix = "app"
