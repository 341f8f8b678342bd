package dreocloud_test

import (
	"context"
	"fmt"
	"log"

	"github.com/dreoctl/dreocloud"
)

func ExampleParseToken() {
	region, clean, err := dreocloud.ParseToken("abc123:EU")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(region, clean)
	// Output: EU abc123
}

func ExampleCleanToken() {
	fmt.Println(dreocloud.CleanToken("abc123:EU"))
	fmt.Println(dreocloud.CleanToken("abc123"))
	// Output:
	// abc123
	// abc123
}

func ExampleDeviceSession_QueryStatus() {
	session := dreocloud.NewDeviceSession()

	status, err := session.QueryStatus(context.Background(), "your-token:EU", "fan-1234")
	if err != nil {
		if dreocloud.IsAuthenticationRejected(err) {
			log.Fatal("token rejected - request a new one from the Dreo app")
		}
		log.Fatal(err)
	}

	fmt.Println(status.Attributes["poweron"])
}

func ExampleDeviceSession_UpdateStatus() {
	session := dreocloud.NewDeviceSession()

	status, err := session.UpdateStatus(context.Background(), "your-token", "fan-1234",
		map[string]any{"poweron": true, "windlevel": 3})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(status.Attributes["windlevel"])
}
