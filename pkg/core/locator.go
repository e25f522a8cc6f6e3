// Package core holds the shared value types and error taxonomy used by the
// driver factory and page layer.
package core

import "fmt"

// Strategy is a W3C/Appium element location strategy. Strategies are opaque
// to this layer and passed to the remote protocol unchanged.
type Strategy string

// Location strategies understood by Appium servers.
const (
	StrategyID                 Strategy = "id"
	StrategyAccessibilityID    Strategy = "accessibility id"
	StrategyXPath              Strategy = "xpath"
	StrategyClassName          Strategy = "class name"
	StrategyName               Strategy = "name"
	StrategyAndroidUIAutomator Strategy = "-android uiautomator"
	StrategyIOSPredicate       Strategy = "-ios predicate string"
	StrategyIOSClassChain      Strategy = "-ios class chain"
)

// Locator identifies a UI element to the remote protocol as a
// (strategy, value) pair.
type Locator struct {
	Using Strategy
	Value string
}

// String returns a short description for logs and error messages.
func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.Using, l.Value)
}

// ByID locates by resource ID.
func ByID(value string) Locator {
	return Locator{Using: StrategyID, Value: value}
}

// ByAccessibilityID locates by accessibility identifier
// (content-desc on Android, accessibility id on iOS).
func ByAccessibilityID(value string) Locator {
	return Locator{Using: StrategyAccessibilityID, Value: value}
}

// ByXPath locates by XPath expression.
func ByXPath(value string) Locator {
	return Locator{Using: StrategyXPath, Value: value}
}

// ByClassName locates by widget class name.
func ByClassName(value string) Locator {
	return Locator{Using: StrategyClassName, Value: value}
}

// ByName locates by element name.
func ByName(value string) Locator {
	return Locator{Using: StrategyName, Value: value}
}

// ByAndroidUIAutomator locates by UiSelector expression (Android only).
func ByAndroidUIAutomator(value string) Locator {
	return Locator{Using: StrategyAndroidUIAutomator, Value: value}
}

// ByIOSPredicate locates by NSPredicate string (iOS only).
func ByIOSPredicate(value string) Locator {
	return Locator{Using: StrategyIOSPredicate, Value: value}
}

// ByIOSClassChain locates by class chain query (iOS only).
func ByIOSClassChain(value string) Locator {
	return Locator{Using: StrategyIOSClassChain, Value: value}
}

// Bounds represents element position and size.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point of the bounds.
func (b Bounds) Center() (int, int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Empty reports whether the bounds have zero area.
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}
