package userconfig

import "testing"

func TestAddUserDefinedPath_Dedup(t *testing.T) {
	c := Default()
	c.AddUserDefinedPath("/opt/java/jdk-21")
	c.AddUserDefinedPath("/opt/java/jdk-21")

	if len(c.UserDefinedPaths) != 1 {
		t.Fatalf("expected 1 path after duplicate add, got %d", len(c.UserDefinedPaths))
	}
}

func TestRemoveUserDefinedPath(t *testing.T) {
	c := Default()
	c.AddUserDefinedPath("/opt/java/jdk-21")
	c.AddUserDefinedPath("/opt/java/jdk-17")
	c.RemoveUserDefinedPath("/opt/java/jdk-21")

	if len(c.UserDefinedPaths) != 1 || c.UserDefinedPaths[0] != "/opt/java/jdk-17" {
		t.Fatalf("unexpected paths after remove: %v", c.UserDefinedPaths)
	}
}

func TestPreferredJavaPath_RoundTrip(t *testing.T) {
	c := Default()
	if got := c.GetPreferredJavaPath(); got != "" {
		t.Fatalf("expected empty preferred path initially, got %q", got)
	}
	c.SetPreferredJavaPath("/usr/lib/jvm/jdk-21/bin/java")
	if got := c.GetPreferredJavaPath(); got != "/usr/lib/jvm/jdk-21/bin/java" {
		t.Fatalf("GetPreferredJavaPath() = %q", got)
	}
}
