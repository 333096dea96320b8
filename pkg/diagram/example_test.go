package diagram_test

import (
	"fmt"

	"github.com/cloudgram/cloudgram/pkg/diagram"
	"github.com/cloudgram/cloudgram/pkg/providers/aws"
	"github.com/cloudgram/cloudgram/pkg/providers/onprem"
)

func ExampleSlugify() {
	fmt.Println(diagram.Slugify("OpenClaw Security Architecture"))
	fmt.Println(diagram.Slugify("Hello, World!"))
	// Output:
	// openclaw_security_architecture
	// hello_world
}

func ExampleDiagram_Chain() {
	d, _ := diagram.New("Web Stack")

	user := onprem.User("User")
	waf := aws.WAF("WAF")
	web := aws.EC2("Web Server")
	_ = d.Add(user)

	ingress, _ := d.Cluster("Ingress")
	_ = ingress.Add(waf, web)

	_ = d.Chain(user, waf, web)

	s := d.Stats()
	fmt.Printf("%d nodes, %d edges, %d clusters\n", s.Nodes, s.Edges, s.Clusters)
	// Output:
	// 3 nodes, 2 edges, 1 clusters
}
