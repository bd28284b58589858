package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) seed() error {
	count, err := cli.seeder.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("%d default resource(s) inserted\n", count)
	return nil
}
